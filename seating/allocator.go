package seating

import "exam-seating-go/models"

// Room is one allocated room: the left and right seat of each bench, in bench order.
type Room struct {
	Left  []models.Student
	Right []models.Student
}

// Seated returns the number of students placed in the room.
func (r Room) Seated() int {
	return len(r.Left) + len(r.Right)
}

// Allocate drains the roster into rooms of benchesPerRoom benches. A standard
// may fill at most benchesPerRoom seats of a room, which keeps it to one side.
// The roster is consumed; it must not be shared with other callers.
func Allocate(roster *Roster, benchesPerRoom int, policy Policy) []Room {
	if benchesPerRoom <= 0 {
		return nil
	}
	a := &allocator{roster: roster, policy: policy, limit: benchesPerRoom}

	var rooms []Room
	for roster.Remaining() > 0 {
		room := a.fillRoom()
		if room.Seated() == 0 {
			// queued standards missing from the policy priority can never drain
			break
		}
		rooms = append(rooms, room)
	}
	return rooms
}

type allocator struct {
	roster *Roster
	policy Policy
	limit  int
	used   map[string]int // seats taken per standard in the current room
}

func (a *allocator) fillRoom() Room {
	a.used = make(map[string]int, len(a.policy.Priority))
	size := min(a.limit, a.roster.Remaining())
	room := Room{
		Left:  make([]models.Student, 0, size),
		Right: make([]models.Student, 0, size),
	}

	// once every queue is empty the remaining benches stay empty
	for bench := 0; bench < a.limit && a.roster.Remaining() > 0; bench++ {
		left, ok := a.pick("")
		if !ok {
			// Nothing qualifies for the left seat; the right seat gets the same
			// qualification pass, so a capped standard is never seated twice.
			if right, ok := a.pick(""); ok {
				room.Right = append(room.Right, a.seat(right))
			}
			continue
		}
		room.Left = append(room.Left, a.seat(left))

		if right, ok := a.pickRight(left); ok {
			room.Right = append(room.Right, a.seat(right))
		}
	}
	return room
}

func (a *allocator) pickRight(left string) (string, bool) {
	if a.policy.PreferPartner {
		if partner, ok := a.policy.Partners[left]; ok && a.qualifies(partner) {
			return partner, true
		}
	}
	return a.pick(left)
}

// pick returns the first standard in priority order that qualifies, skipping exclude.
func (a *allocator) pick(exclude string) (string, bool) {
	for _, std := range a.policy.Priority {
		if std != exclude && a.qualifies(std) {
			return std, true
		}
	}
	return "", false
}

func (a *allocator) qualifies(std string) bool {
	q := a.roster.Queue(std)
	return q != nil && q.Len() > 0 && a.used[std] < a.limit
}

func (a *allocator) seat(std string) models.Student {
	s, _ := a.roster.Queue(std).Pop()
	a.used[std]++
	return s
}
