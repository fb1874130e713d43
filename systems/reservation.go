package systems

import (
	"slices"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/meadow/components"
)

// FreeCapacity returns how many more claims a resource accepts.
// Bushes accept one claim per unreserved berry; water points accept one
// claim in total.
func FreeCapacity(res *components.Resource) int {
	if res.IsWater() {
		if len(res.Reserved) == 0 {
			return 1
		}
		return 0
	}
	free := res.Quantity - len(res.Reserved)
	if free < 0 {
		return 0
	}
	return free
}

// Holds reports whether agent has an outstanding claim on res.
func Holds(res *components.Resource, agent ecs.Entity) bool {
	return slices.Contains(res.Reserved, agent)
}

// Claim reserves one unit of res for agent. Claiming a resource the agent
// already holds succeeds without taking a second unit.
func Claim(res *components.Resource, agent ecs.Entity) bool {
	if Holds(res, agent) {
		return true
	}
	if FreeCapacity(res) <= 0 {
		return false
	}
	res.Reserved = append(res.Reserved, agent)
	return true
}

// Release drops agent's claim on res. Releasing a claim that is not held is
// a no-op.
func Release(res *components.Resource, agent ecs.Entity) {
	if i := slices.Index(res.Reserved, agent); i >= 0 {
		res.Reserved = slices.Delete(res.Reserved, i, i+1)
	}
}

// Consume takes one unit from res on behalf of agent and releases agent's
// claim. It reports whether a unit was actually consumed: a bush with no
// berries left yields nothing, water never runs out.
func Consume(res *components.Resource, agent ecs.Entity) bool {
	defer Release(res, agent)
	if res.IsWater() {
		return true
	}
	if res.Quantity <= 0 {
		return false
	}
	res.Quantity--
	return true
}

// Regrow adds one berry to a bush, up to its cap.
func Regrow(res *components.Resource) bool {
	if res.IsWater() || res.Quantity >= res.MaxQuantity {
		return false
	}
	res.Quantity++
	return true
}
