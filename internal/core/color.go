package core

// Color represents a foreground color for a screen cell.
// The platform layer maps each value to a terminal style.
type Color uint8

// Palette for the snake field and HUD.
const (
	ColorDefault Color = iota
	ColorGrass
	ColorGrassAlt
	ColorTrunk
	ColorLeaves
	ColorStone
	ColorApple
	ColorHead
	ColorBody
	ColorHUD
	ColorAccent
	ColorDim
	ColorDanger
)
