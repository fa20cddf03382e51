package boltlib

// Platform identifies the target a container was authored for. Type
// codes differ between the PC/Mac and CD-i releases.
type Platform string

const (
	PlatformPC  Platform = "PC"
	PlatformCDI Platform = "CDI"
)

// DetectGame maps a container's byte length to a known release. The
// shipped containers are byte-identical per release, so the file size
// is a reliable fingerprint. Unknown sizes default to the PC platform
// with known=false.
func DetectGame(fileSize int64) (game string, platform Platform, known bool) {
	switch fileSize {
	case 11724174:
		return "Labyrinth of Crete PC/Mac", PlatformPC, true
	case 10452486:
		return "Merlin's Apprentice PC/Mac", PlatformPC, true
	case 8007558:
		return "Merlin's Apprentice CD-I", PlatformCDI, true
	}
	return "", PlatformPC, false
}

// Kind is the semantic interpretation of a resource type code.
// KindRaw marks codes with no known structure; their payloads are
// still loadable as raw bytes.
type Kind int

const (
	KindRaw Kind = iota
	KindValues8
	KindValues16
	KindResourceList
	KindSound
	KindImage
	KindPalette
	KindColorCycles
	KindColorCycleSlot
	KindPlane
	KindSprites
	KindColors
	KindPaletteMod
	KindButtonGraphics
	KindButtons
	KindScene
	KindMainMenu
	KindFileMenu
	KindDifficultyMenu
	KindPotionPuzzle
	KindPotionIngredientSlot
	KindPotionIngredients
	KindPotionComboList
	KindPotionCombos
)

func (k Kind) String() string {
	switch k {
	case KindValues8:
		return "8-bit Values"
	case KindValues16:
		return "16-bit Values"
	case KindResourceList:
		return "Resource List"
	case KindSound:
		return "Sound"
	case KindImage:
		return "Image"
	case KindPalette:
		return "Palette"
	case KindColorCycles:
		return "Color Cycles"
	case KindColorCycleSlot:
		return "Color Cycle Slot"
	case KindPlane:
		return "Plane"
	case KindSprites:
		return "Sprites"
	case KindColors:
		return "Colors"
	case KindPaletteMod:
		return "Palette Mod"
	case KindButtonGraphics:
		return "Button Graphics"
	case KindButtons:
		return "Buttons"
	case KindScene:
		return "Scene"
	case KindMainMenu:
		return "Main Menu"
	case KindFileMenu:
		return "File Menu"
	case KindDifficultyMenu:
		return "Difficulty Menu"
	case KindPotionPuzzle:
		return "Potion Puzzle"
	case KindPotionIngredientSlot:
		return "Potion Ingredient Slot"
	case KindPotionIngredients:
		return "Potion Ingredients"
	case KindPotionComboList:
		return "Potion Combo List"
	case KindPotionCombos:
		return "Potion Combos"
	}
	return "Raw"
}

// Registry maps a platform's numeric resource type codes to Kinds.
// Codes absent from the map are KindRaw.
type Registry map[uint16]Kind

// Lookup returns the Kind for a type code, or KindRaw if unmapped.
func (r Registry) Lookup(typeCode uint16) Kind {
	if k, ok := r[typeCode]; ok {
		return k
	}
	return KindRaw
}

// TypeRegistry builds the type-code mapping for a platform. The result
// is a plain value constructed once by the caller and passed where
// needed; the library keeps no global registry state.
func TypeRegistry(p Platform) Registry {
	r := Registry{
		1:  KindValues8,
		6:  KindResourceList,
		8:  KindImage,
		10: KindPalette,
		11: KindColorCycles,
		12: KindColorCycleSlot,
	}
	if p == PlatformCDI {
		r[19] = KindSound
		r[27] = KindPlane
		r[28] = KindSprites
		r[29] = KindColors
		r[30] = KindPaletteMod
		r[31] = KindButtonGraphics
		r[32] = KindButtons
		r[33] = KindScene
		return r
	}
	r[3] = KindValues16
	r[7] = KindSound
	r[26] = KindPlane
	r[27] = KindSprites
	r[28] = KindColors
	r[29] = KindPaletteMod
	r[30] = KindButtonGraphics
	r[31] = KindButtons
	r[32] = KindScene
	r[33] = KindMainMenu
	r[34] = KindFileMenu
	r[35] = KindDifficultyMenu
	r[59] = KindPotionPuzzle
	r[60] = KindPotionIngredientSlot
	r[61] = KindPotionIngredients
	r[62] = KindPotionComboList
	r[63] = KindPotionCombos
	return r
}
