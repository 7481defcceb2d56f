package encounters

// CatColor define los colores/patrones de pelaje soportados.
// @Enum black, white, gray, orange, brown, cream, tabby, calico, tortoiseshell, tuxedo, pointed, other
type CatColor string

const (
	ColorBlack         CatColor = "black"
	ColorWhite         CatColor = "white"
	ColorGray          CatColor = "gray"
	ColorOrange        CatColor = "orange"
	ColorBrown         CatColor = "brown"
	ColorCream         CatColor = "cream"
	ColorTabby         CatColor = "tabby"
	ColorCalico        CatColor = "calico"
	ColorTortoiseshell CatColor = "tortoiseshell"
	ColorTuxedo        CatColor = "tuxedo"
	ColorPointed       CatColor = "pointed"
	ColorOther         CatColor = "other"
)

// CoatType define el tipo de pelaje observado.
type CoatType string

const (
	CoatShorthair CoatType = "shorthair"
	CoatLonghair  CoatType = "longhair"
	CoatHairless  CoatType = "hairless"
	CoatUnknown   CoatType = "unknown"
)

// Behavior define el comportamiento observado durante el avistamiento.
// @Enum friendly, shy, playful, sleeping, hunting, eating, grooming, vocal, aggressive, other
type Behavior string

const (
	BehaviorFriendly   Behavior = "friendly"
	BehaviorShy        Behavior = "shy"
	BehaviorPlayful    Behavior = "playful"
	BehaviorSleeping   Behavior = "sleeping"
	BehaviorHunting    Behavior = "hunting"
	BehaviorEating     Behavior = "eating"
	BehaviorGrooming   Behavior = "grooming"
	BehaviorVocal      Behavior = "vocal"
	BehaviorAggressive Behavior = "aggressive"
	BehaviorOther      Behavior = "other"
)

var knownColors = map[CatColor]struct{}{
	ColorBlack: {}, ColorWhite: {}, ColorGray: {}, ColorOrange: {},
	ColorBrown: {}, ColorCream: {}, ColorTabby: {}, ColorCalico: {},
	ColorTortoiseshell: {}, ColorTuxedo: {}, ColorPointed: {}, ColorOther: {},
}

var knownCoats = map[CoatType]struct{}{
	CoatShorthair: {}, CoatLonghair: {}, CoatHairless: {}, CoatUnknown: {},
}

var knownBehaviors = map[Behavior]struct{}{
	BehaviorFriendly: {}, BehaviorShy: {}, BehaviorPlayful: {}, BehaviorSleeping: {},
	BehaviorHunting: {}, BehaviorEating: {}, BehaviorGrooming: {}, BehaviorVocal: {},
	BehaviorAggressive: {}, BehaviorOther: {},
}

func KnownColor(c CatColor) bool {
	_, ok := knownColors[c]
	return ok
}

func KnownCoat(c CoatType) bool {
	_, ok := knownCoats[c]
	return ok
}

func KnownBehavior(b Behavior) bool {
	_, ok := knownBehaviors[b]
	return ok
}
