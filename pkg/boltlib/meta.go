package boltlib

import (
	"fmt"

	"github.com/beholdnec/bltview/internal/cursor"
)

// Parsers for the structured metadata resource kinds. List-shaped
// resources are parsed greedily: elements are consumed while a full
// element remains, trailing partial bytes are ignored.

// ParseValues16 parses a 16-bit values resource.
func ParseValues16(payload []byte) []uint16 {
	c := cursor.New(payload)
	vals := make([]uint16, 0, len(payload)/2)
	for c.Remaining() >= 2 {
		v, _ := c.ReadU16()
		vals = append(vals, v)
	}
	return vals
}

// ParseResourceList parses a resource-list resource: packed 32-bit
// resource ids.
func ParseResourceList(payload []byte) []uint32 {
	c := cursor.New(payload)
	ids := make([]uint32, 0, len(payload)/4)
	for c.Remaining() >= 4 {
		v, _ := c.ReadU32()
		ids = append(ids, v)
	}
	return ids
}

// ColorCycles drives palette animation: up to four active slots.
type ColorCycles struct {
	NumSlots [4]uint16
	SlotIDs  [4]uint32
}

// ParseColorCycles parses a color-cycles resource.
func ParseColorCycles(payload []byte) (ColorCycles, error) {
	c := cursor.New(payload)
	var cc ColorCycles
	for i := range cc.NumSlots {
		v, err := c.ReadU16()
		if err != nil {
			return ColorCycles{}, fmt.Errorf("color cycles: %w", err)
		}
		cc.NumSlots[i] = v
	}
	for i := range cc.SlotIDs {
		v, err := c.ReadU32()
		if err != nil {
			return ColorCycles{}, fmt.Errorf("color cycles: %w", err)
		}
		cc.SlotIDs[i] = v
	}
	return cc, nil
}

// ColorCycleSlot is one palette-rotation range.
type ColorCycleSlot struct {
	Start uint16
	End   uint16
	Unk4  uint16
}

// ParseColorCycleSlot parses a color-cycle-slot resource.
func ParseColorCycleSlot(payload []byte) (ColorCycleSlot, error) {
	c := cursor.New(payload)
	var s ColorCycleSlot
	var err error
	if s.Start, err = c.ReadU16(); err == nil {
		if s.End, err = c.ReadU16(); err == nil {
			s.Unk4, err = c.ReadU16()
		}
	}
	if err != nil {
		return ColorCycleSlot{}, fmt.Errorf("color cycle slot: %w", err)
	}
	return s, nil
}

// Plane ties a background image to its palette and hotspot map.
type Plane struct {
	ImageID    uint32
	PaletteID  uint32
	HotspotsID uint32
	UnkC       uint32
}

// ParsePlane parses a plane resource.
func ParsePlane(payload []byte) (Plane, error) {
	c := cursor.New(payload)
	var p Plane
	p.ImageID, _ = c.ReadU32()
	p.PaletteID, _ = c.ReadU32()
	p.HotspotsID, _ = c.ReadU32()
	uc, err := c.ReadU32()
	if err != nil {
		return Plane{}, fmt.Errorf("plane: %w", err)
	}
	p.UnkC = uc
	return p, nil
}

// Sprite places an image resource at a position.
type Sprite struct {
	X       int16
	Y       int16
	ImageID uint32
}

// ParseSprites parses a sprite-list resource.
func ParseSprites(payload []byte) []Sprite {
	c := cursor.New(payload)
	sprites := make([]Sprite, 0, len(payload)/8)
	for c.Remaining() >= 8 {
		var s Sprite
		s.X, _ = c.ReadI16()
		s.Y, _ = c.ReadI16()
		s.ImageID, _ = c.ReadU32()
		sprites = append(sprites, s)
	}
	return sprites
}

// PaletteMod patches a range of palette entries from a colors resource.
type PaletteMod struct {
	Index    uint8
	Count    uint8
	ColorsID uint32
}

// ParsePaletteMods parses a palette-mod resource.
func ParsePaletteMods(payload []byte) []PaletteMod {
	c := cursor.New(payload)
	mods := make([]PaletteMod, 0, len(payload)/6)
	for c.Remaining() >= 6 {
		var m PaletteMod
		m.Index, _ = c.ReadU8()
		m.Count, _ = c.ReadU8()
		m.ColorsID, _ = c.ReadU32()
		mods = append(mods, m)
	}
	return mods
}

// Button graphics entry types.
const (
	ButtonGraphicsPaletteMods uint16 = 1
	ButtonGraphicsSprites     uint16 = 2
)

// ButtonGraphicsTypeName returns the display name for a button-graphics
// entry type.
func ButtonGraphicsTypeName(t uint16) string {
	switch t {
	case ButtonGraphicsPaletteMods:
		return "Palette Mods"
	case ButtonGraphicsSprites:
		return "Sprites"
	}
	return "Unknown"
}

// ButtonGraphics selects hovered/idle presentation for a button.
type ButtonGraphics struct {
	Type      uint16
	Unk2      uint32
	HoveredID uint32
	IdleID    uint32
}

// ParseButtonGraphics parses a button-graphics resource.
func ParseButtonGraphics(payload []byte) []ButtonGraphics {
	c := cursor.New(payload)
	entries := make([]ButtonGraphics, 0, len(payload)/14)
	for c.Remaining() >= 14 {
		var g ButtonGraphics
		g.Type, _ = c.ReadU16()
		g.Unk2, _ = c.ReadU32()
		g.HoveredID, _ = c.ReadU32()
		g.IdleID, _ = c.ReadU32()
		entries = append(entries, g)
	}
	return entries
}

// Button hit-region types.
const (
	ButtonRectangle    uint16 = 1
	ButtonHotspotQuery uint16 = 3
)

// ButtonTypeName returns the display name for a button hit-region type.
func ButtonTypeName(t uint16) string {
	switch t {
	case ButtonRectangle:
		return "Rectangle"
	case ButtonHotspotQuery:
		return "Hotspot Query"
	}
	return "Unknown"
}

// Button is one clickable region of a scene.
type Button struct {
	Type        uint16
	Left        uint16
	Right       uint16
	Top         uint16
	Bottom      uint16
	Plane       uint16
	NumGraphics uint16
	UnkE        uint16
	GraphicsID  uint32
}

// ParseButtons parses a buttons resource.
func ParseButtons(payload []byte) []Button {
	c := cursor.New(payload)
	buttons := make([]Button, 0, len(payload)/20)
	for c.Remaining() >= 20 {
		var b Button
		b.Type, _ = c.ReadU16()
		b.Left, _ = c.ReadU16()
		b.Right, _ = c.ReadU16()
		b.Top, _ = c.ReadU16()
		b.Bottom, _ = c.ReadU16()
		b.Plane, _ = c.ReadU16()
		b.NumGraphics, _ = c.ReadU16()
		b.UnkE, _ = c.ReadU16()
		b.GraphicsID, _ = c.ReadU32()
		buttons = append(buttons, b)
	}
	return buttons
}

// Scene describes a composed screen. OriginX/OriginY are present only
// in the PC variant; HasOrigin reports which variant was parsed.
type Scene struct {
	ForePlaneID   uint32
	BackPlaneID   uint32
	NumSprites    uint8
	Unk9          uint8
	SpritesID     uint32
	UnkE          uint32
	Unk12         uint32
	ColorCyclesID uint32
	NumButtons    uint16
	ButtonsID     uint32
	HasOrigin     bool
	OriginX       int16
	OriginY       int16
}

// ParseScene parses a scene resource for the given platform. The CD-i
// variant lacks the trailing origin pair.
func ParseScene(payload []byte, platform Platform) (Scene, error) {
	c := cursor.New(payload)
	var s Scene
	s.ForePlaneID, _ = c.ReadU32()
	s.BackPlaneID, _ = c.ReadU32()
	s.NumSprites, _ = c.ReadU8()
	s.Unk9, _ = c.ReadU8()
	s.SpritesID, _ = c.ReadU32()
	s.UnkE, _ = c.ReadU32()
	s.Unk12, _ = c.ReadU32()
	s.ColorCyclesID, _ = c.ReadU32()
	s.NumButtons, _ = c.ReadU16()
	bid, err := c.ReadU32()
	if err != nil {
		return Scene{}, fmt.Errorf("scene: %w", err)
	}
	s.ButtonsID = bid

	if platform != PlatformCDI {
		s.HasOrigin = true
		s.OriginX, _ = c.ReadI16()
		if s.OriginY, err = c.ReadI16(); err != nil {
			return Scene{}, fmt.Errorf("scene origin: %w", err)
		}
	}
	return s, nil
}

// MainMenu is the PC main-menu descriptor.
type MainMenu struct {
	SceneID            uint32
	ColorbarsID        uint32
	ColorbarsPaletteID uint32
}

// ParseMainMenu parses a main-menu resource.
func ParseMainMenu(payload []byte) (MainMenu, error) {
	c := cursor.New(payload)
	var m MainMenu
	m.SceneID, _ = c.ReadU32()
	m.ColorbarsID, _ = c.ReadU32()
	v, err := c.ReadU32()
	if err != nil {
		return MainMenu{}, fmt.Errorf("main menu: %w", err)
	}
	m.ColorbarsPaletteID = v
	return m, nil
}

// FileMenu is the PC save-file menu descriptor: the scene plus the
// resources for each menu caption and the three digit-image banks used
// to render save-slot counters.
type FileMenu struct {
	SceneID           uint32
	SelectGamePieceID uint32
	SetNewID          uint32
	NewID             uint32
	SolvedID          uint32
	OneMoreID         uint32
	XMoreID           uint32
	XXMoreID          uint32
	Unk20             uint32
	Unk24             uint32
	TensDigitIDs      [10]uint32
	OnesDigitIDs      [10]uint32
	UnkDigitIDs       [10]uint32
	UnkA0             uint32
	SoundID           uint16
}

// ParseFileMenu parses a file-menu resource.
func ParseFileMenu(payload []byte) (FileMenu, error) {
	c := cursor.New(payload)
	var m FileMenu
	m.SceneID, _ = c.ReadU32()
	m.SelectGamePieceID, _ = c.ReadU32()
	m.SetNewID, _ = c.ReadU32()
	m.NewID, _ = c.ReadU32()
	m.SolvedID, _ = c.ReadU32()
	m.OneMoreID, _ = c.ReadU32()
	m.XMoreID, _ = c.ReadU32()
	m.XXMoreID, _ = c.ReadU32()
	m.Unk20, _ = c.ReadU32()
	m.Unk24, _ = c.ReadU32()
	for i := range m.TensDigitIDs {
		m.TensDigitIDs[i], _ = c.ReadU32()
	}
	for i := range m.OnesDigitIDs {
		m.OnesDigitIDs[i], _ = c.ReadU32()
	}
	for i := range m.UnkDigitIDs {
		m.UnkDigitIDs[i], _ = c.ReadU32()
	}
	m.UnkA0, _ = c.ReadU32()
	v, err := c.ReadU16()
	if err != nil {
		return FileMenu{}, fmt.Errorf("file menu: %w", err)
	}
	m.SoundID = v
	return m, nil
}

// DifficultyMenu is the PC difficulty-menu descriptor.
type DifficultyMenu struct {
	SceneID            uint32
	ChooseDifficultyID uint32
	ChangeDifficultyID uint32
}

// ParseDifficultyMenu parses a difficulty-menu resource.
func ParseDifficultyMenu(payload []byte) (DifficultyMenu, error) {
	c := cursor.New(payload)
	var m DifficultyMenu
	m.SceneID, _ = c.ReadU32()
	m.ChooseDifficultyID, _ = c.ReadU32()
	v, err := c.ReadU32()
	if err != nil {
		return DifficultyMenu{}, fmt.Errorf("difficulty menu: %w", err)
	}
	m.ChangeDifficultyID = v
	return m, nil
}

// PotionPuzzle is the PC potion-puzzle descriptor. Unk covers the ten
// unidentified words at payload bytes 0x0C through 0x33.
type PotionPuzzle struct {
	Unk0      uint32
	BGImageID uint32
	PaletteID uint32
	Unk       [10]uint32
	Delay     uint16
	SoundIDs  [7]uint16
	OriginX   int16
	OriginY   int16
}

// ParsePotionPuzzle parses a potion-puzzle resource.
func ParsePotionPuzzle(payload []byte) (PotionPuzzle, error) {
	c := cursor.New(payload)
	var p PotionPuzzle
	p.Unk0, _ = c.ReadU32()
	p.BGImageID, _ = c.ReadU32()
	p.PaletteID, _ = c.ReadU32()
	for i := range p.Unk {
		p.Unk[i], _ = c.ReadU32()
	}
	p.Delay, _ = c.ReadU16()
	for i := range p.SoundIDs {
		p.SoundIDs[i], _ = c.ReadU16()
	}
	p.OriginX, _ = c.ReadI16()
	oy, err := c.ReadI16()
	if err != nil {
		return PotionPuzzle{}, fmt.Errorf("potion puzzle: %w", err)
	}
	p.OriginY = oy
	return p, nil
}

// PotionCombo is one ingredient-combination entry of the potion puzzle.
type PotionCombo struct {
	A, B, C, D uint8
	Movie      uint16
}

// ParsePotionCombos parses a potion-combos resource.
func ParsePotionCombos(payload []byte) []PotionCombo {
	c := cursor.New(payload)
	combos := make([]PotionCombo, 0, len(payload)/6)
	for c.Remaining() >= 6 {
		var pc PotionCombo
		pc.A, _ = c.ReadU8()
		pc.B, _ = c.ReadU8()
		pc.C, _ = c.ReadU8()
		pc.D, _ = c.ReadU8()
		pc.Movie, _ = c.ReadU16()
		combos = append(combos, pc)
	}
	return combos
}

// potionMovieNames was extracted from MERLIN.EXE.
var potionMovieNames = []string{
	"ELEC", "EXPL", "FLAM", "FLSH", "MIST", "OOZE", "SHMR",
	"SWRL", "WIND", "BOIL", "BUBL", "BSPK", "FBRS", "FCLD",
	"FFLS", "FSWR", "LAVA", "LFIR", "LSMK", "SBLS", "SCLM",
	"SFLS", "SPRE", "WSTM", "WSWL", "BUGS", "CRYS", "DNCR",
	"FISH", "GLAC", "GOLM", "EYEB", "MOLE", "MOTH", "MUDB",
	"ROCK", "SHTR", "SLUG", "SNAK", "SPKB", "SPKM", "SPDR",
	"SQID", "CLOD", "SWIR", "VOLC", "WORM",
}

// PotionMovieName returns the effect-movie name for a potion combo, or
// "Unknown" for out-of-range indices.
func PotionMovieName(movie uint16) string {
	if int(movie) < len(potionMovieNames) {
		return potionMovieNames[movie]
	}
	return "Unknown"
}
