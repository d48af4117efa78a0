package components

// EntityKind 场景实体类别
type EntityKind string

const (
	KindWall EntityKind = "wall"
	KindBot  EntityKind = "bot"
	KindBall EntityKind = "ball"
)

// TagComponent 标识实体类别，便于按类别查找
type TagComponent struct {
	Kind EntityKind
}
