package game

import "fmt"

type LevelID int

const (
	LevelStandard LevelID = iota
	LevelBig
	LevelThird
	LevelWithWalls
	LevelCustom

	levelCount
	// NoLevel marks "nothing to continue".
	NoLevel LevelID = -1
)

var levelNames = [...]string{"standard", "big", "third", "with_walls", "custom"}

func (id LevelID) String() string {
	if id >= 0 && id < levelCount {
		return levelNames[id]
	}
	return fmt.Sprintf("level(%d)", int(id))
}

// ParseLevelID maps a level name as used in the config file.
func ParseLevelID(s string) (LevelID, error) {
	for i, n := range levelNames {
		if n == s {
			return LevelID(i), nil
		}
	}
	return NoLevel, fmt.Errorf("unknown level %q", s)
}

var presets = [...]LevelParams{
	LevelStandard: {
		Looping:     true,
		InitApple:   true,
		Width:       16,
		Height:      16,
		CameraZ:     25,
		TimePerMove: 0.15,
		Snake:       SnakeInfo{Head: Cell{6, 6}, Dir: Right, Length: 4},
	},
	LevelBig: {
		Looping:     true,
		InitApple:   true,
		Width:       64,
		Height:      64,
		CameraZ:     100,
		TimePerMove: 0.05,
		Snake:       SnakeInfo{Head: Cell{24, 22}, Dir: Right, Length: 16},
	},
	LevelThird: {
		InitApple:   true,
		Width:       16,
		Height:      16,
		CameraZ:     25,
		TimePerMove: 0.2,
		Snake:       SnakeInfo{Head: Cell{6, 6}, Dir: Right, Length: 4},
	},
	LevelWithWalls: {
		InitApple:   true,
		Width:       16,
		Height:      16,
		CameraZ:     25,
		TimePerMove: 0.2,
		Snake:       SnakeInfo{Head: Cell{6, 6}, Dir: Right, Length: 4},
		Walls:       8,
	},
}

// Preset returns the parameters of a built-in level. LevelCustom has none.
func Preset(id LevelID) (LevelParams, bool) {
	if id < 0 || int(id) >= len(presets) {
		return LevelParams{}, false
	}
	return presets[id], true
}

// MenuParams is the one-row board running behind the main menu.
var MenuParams = LevelParams{
	Looping:     true,
	Width:       16,
	Height:      1,
	CameraZ:     25,
	TimePerMove: 0.52,
	Snake:       SnakeInfo{Head: Cell{15, 0}, Dir: Right, Length: 10},
}

// Choices offered by the custom level editor.
var (
	CustomSizes     = [...]int{8, 16, 32, 64}
	CustomCameraZ   = [...]float32{22, 25, 50, 100}
	CustomMoveTimes = [...]float32{0.05, 0.1, 0.2, 0.5, 1}
)

// CustomParams builds the editor's level. The indices select from
// CustomSizes and CustomMoveTimes and are clamped. The camera distance
// follows the longer side.
func CustomParams(widthIdx, heightIdx, timeIdx int, looping bool) LevelParams {
	widthIdx = clampIndex(widthIdx, len(CustomSizes))
	heightIdx = clampIndex(heightIdx, len(CustomSizes))
	timeIdx = clampIndex(timeIdx, len(CustomMoveTimes))
	return LevelParams{
		Looping:     looping,
		InitApple:   true,
		Width:       CustomSizes[widthIdx],
		Height:      CustomSizes[heightIdx],
		CameraZ:     CustomCameraZ[max(widthIdx, heightIdx)],
		TimePerMove: CustomMoveTimes[timeIdx],
		Snake:       SnakeInfo{Head: Cell{4, 1}, Dir: Right, Length: 2},
	}
}

func clampIndex(i, n int) int { return max(0, min(i, n-1)) }
