package pinball

import "github.com/vovakirdan/pinball-madness/internal/physics"

// BodyKind identifies a body's gameplay role. Every physics body carries its
// kind in Body.Tag.
type BodyKind int

const (
	KindBall BodyKind = iota
	KindDuplicateBall
	KindFlipperLeft
	KindFlipperRight
	KindBumperLeft
	KindBumperRight
	KindBumperCenter
	KindBumper
	KindWall
	KindObstacle
	KindItemDuplicate
	KindItemFist
	KindItemGravity
	KindItemRota
	KindItemBoss
	KindRotaCheck
	KindPistonLeft
	KindPistonRight
	KindFistProjectileLeft
	KindFistProjectileRight
	KindLoseBox
	KindBoss
	KindMeteor
	KindAttackPush
	KindAttackLaser
)

// Category bits. Several kinds share a category; handlers that care about
// the exact role read the kind.
const (
	catBall physics.Category = 1 << iota
	catDuplicate
	catFlipper
	catBumper
	catWall
	catObstacle
	catItem
	catRotaCheck
	catPiston
	catProjectile
	catLoseBox
	catBoss
	catMeteor
	catAttack
)

const catAnyBall = catBall | catDuplicate

var kindCategory = map[BodyKind]physics.Category{
	KindBall:                catBall,
	KindDuplicateBall:       catDuplicate,
	KindFlipperLeft:         catFlipper,
	KindFlipperRight:        catFlipper,
	KindBumperLeft:          catBumper,
	KindBumperRight:         catBumper,
	KindBumperCenter:        catBumper,
	KindBumper:              catBumper,
	KindWall:                catWall,
	KindObstacle:            catObstacle,
	KindItemDuplicate:       catItem,
	KindItemFist:            catItem,
	KindItemGravity:         catItem,
	KindItemRota:            catItem,
	KindItemBoss:            catItem,
	KindRotaCheck:           catRotaCheck,
	KindPistonLeft:          catPiston,
	KindPistonRight:         catPiston,
	KindFistProjectileLeft:  catProjectile,
	KindFistProjectileRight: catProjectile,
	KindLoseBox:             catLoseBox,
	KindBoss:                catBoss,
	KindMeteor:              catMeteor,
	KindAttackPush:          catAttack,
	KindAttackLaser:         catAttack,
}

// filterFor returns the collision and contact masks of a kind.
//
// Solid pairs: balls bounce off walls, flippers, bumpers, obstacles,
// pistons, the boss, meteors and each other. Everything else is a sensor
// relationship that only produces contacts.
func filterFor(k BodyKind) physics.Filter {
	cat := kindCategory[k]
	switch cat {
	case catBall:
		return physics.Filter{
			Category:    cat,
			CollideWith: catWall | catFlipper | catBumper | catObstacle | catPiston | catBoss | catMeteor | catDuplicate,
			ContactWith: catFlipper | catBumper | catItem | catRotaCheck | catProjectile | catLoseBox | catBoss | catMeteor | catAttack,
		}
	case catDuplicate:
		return physics.Filter{
			Category:    cat,
			CollideWith: catWall | catFlipper | catBumper | catObstacle | catPiston | catBoss | catMeteor | catBall,
			ContactWith: catFlipper | catBumper | catLoseBox | catAttack,
		}
	case catMeteor:
		return physics.Filter{
			Category:    cat,
			CollideWith: catWall | catFlipper | catBumper,
			ContactWith: catBoss,
		}
	case catProjectile:
		return physics.Filter{
			Category:    cat,
			ContactWith: catWall | catBumper | catObstacle,
		}
	case catAttack:
		return physics.Filter{
			Category:    cat,
			ContactWith: catWall | catFlipper | catBumper | catMeteor | catLoseBox,
		}
	default:
		return physics.Filter{Category: cat}
	}
}

// KindOf returns the kind stored in a body's tag.
func KindOf(b *physics.Body) BodyKind {
	if b == nil {
		return -1
	}
	if k, ok := b.Tag.(BodyKind); ok {
		return k
	}
	return -1
}

// ItemKind is a collectible power-up.
type ItemKind int

const (
	ItemNone ItemKind = iota
	ItemDuplicate
	ItemFist
	ItemGravity
	ItemRota
	ItemBoss
)

var itemNames = map[ItemKind]string{
	ItemNone:      "none",
	ItemDuplicate: "duplicate",
	ItemFist:      "fist",
	ItemGravity:   "gravity",
	ItemRota:      "rota",
	ItemBoss:      "boss",
}

// String returns the item name.
func (k ItemKind) String() string {
	if name, ok := itemNames[k]; ok {
		return name
	}
	return "unknown"
}

func (k ItemKind) bodyKind() BodyKind {
	switch k {
	case ItemDuplicate:
		return KindItemDuplicate
	case ItemFist:
		return KindItemFist
	case ItemGravity:
		return KindItemGravity
	case ItemRota:
		return KindItemRota
	default:
		return KindItemBoss
	}
}

func itemFromBody(k BodyKind) ItemKind {
	switch k {
	case KindItemDuplicate:
		return ItemDuplicate
	case KindItemFist:
		return ItemFist
	case KindItemGravity:
		return ItemGravity
	case KindItemRota:
		return ItemRota
	case KindItemBoss:
		return ItemBoss
	default:
		return ItemNone
	}
}

// Side selects the left or right flipper or piston.
type Side int

const (
	SideLeft Side = iota
	SideRight
)

// String returns "left" or "right".
func (s Side) String() string {
	if s == SideRight {
		return "right"
	}
	return "left"
}

// dir is +1 for the left side and -1 for the right. Left flippers raise with
// positive rotation; everything on the right mirrors it.
func (s Side) dir() float64 {
	if s == SideRight {
		return -1
	}
	return 1
}
