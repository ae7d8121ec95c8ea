package grid

import (
	"sync"
)

// PropertyID is an interned shader input name. Backends map IDs to their own binding
// slots so the per-frame path never hashes strings.
type PropertyID int32

const InvalidProperty PropertyID = -1

// Shader input names shared by the compute program and the point material.
const (
	KernelName = "Main"

	PropTime             = "_Time"
	PropSpeed            = "_Speed"
	PropMaxOffset        = "_MaxOffset"
	PropConverge         = "_Converge"
	PropConvergeRadius   = "_ConvergeRadius"
	PropConvergeStrength = "_ConvergeStrength"
	PropConvergeSpeed    = "_ConvergeSpeed"
	PropPositions        = "_Positions"
	PropPreOffset        = "_PreOffset"
	PropDimensions       = "_Dimensions"
)

var propertyTable = struct {
	sync.Mutex
	ids   map[string]PropertyID
	names []string
}{ids: make(map[string]PropertyID)}

// PropertyToID returns the process-wide ID for name, assigning one on first use.
func PropertyToID(name string) PropertyID {
	propertyTable.Lock()
	defer propertyTable.Unlock()

	if id, ok := propertyTable.ids[name]; ok {
		return id
	}
	id := PropertyID(len(propertyTable.names))
	propertyTable.ids[name] = id
	propertyTable.names = append(propertyTable.names, name)
	return id
}

// Name returns the name id was interned from.
func (id PropertyID) Name() string {
	propertyTable.Lock()
	defer propertyTable.Unlock()

	if id < 0 || int(id) >= len(propertyTable.names) {
		return ""
	}
	return propertyTable.names[id]
}

// propertyHandles is resolved once per animator.
type propertyHandles struct {
	time             PropertyID
	speed            PropertyID
	maxOffset        PropertyID
	converge         PropertyID
	convergeRadius   PropertyID
	convergeStrength PropertyID
	convergeSpeed    PropertyID
	positions        PropertyID
	preOffset        PropertyID
	dimensions       PropertyID
}

func resolvePropertyHandles() propertyHandles {
	return propertyHandles{
		time:             PropertyToID(PropTime),
		speed:            PropertyToID(PropSpeed),
		maxOffset:        PropertyToID(PropMaxOffset),
		converge:         PropertyToID(PropConverge),
		convergeRadius:   PropertyToID(PropConvergeRadius),
		convergeStrength: PropertyToID(PropConvergeStrength),
		convergeSpeed:    PropertyToID(PropConvergeSpeed),
		positions:        PropertyToID(PropPositions),
		preOffset:        PropertyToID(PropPreOffset),
		dimensions:       PropertyToID(PropDimensions),
	}
}
