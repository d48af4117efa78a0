package components

import "github.com/decker502/gridfloor/pkg/placement"

// PlacementComponent 保存实体在世界空间中的包围盒
type PlacementComponent struct {
	Placement placement.Placement
}
