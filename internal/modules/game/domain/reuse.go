package domain

// ActorReuseCap is the maximum number of successful turns in one game that
// may credit the same cast member as the connecting actor.
const ActorReuseCap = 3

// ActorReuseNotice is recorded as a notification for the guesser when their
// guess is rejected by the reuse cap.
const ActorReuseNotice = "Actor has already been used three times!"

type ReuseCheck struct {
	Allowed       bool
	OverusedActor string
}

// CheckActorReuse decides whether crediting candidateCast would push any of
// its members past the reuse cap. Each prior successful turn contributes at
// most one count per distinct actor. An empty candidate cast is never
// rejected, because a failed guess credits nobody.
func CheckActorReuse(priorSuccessCasts []CastMembers, candidateCast CastMembers) ReuseCheck {
	if len(candidateCast) == 0 {
		return ReuseCheck{Allowed: true}
	}

	counts := make(map[int64]int)
	for _, cast := range priorSuccessCasts {
		seen := make(map[int64]struct{}, len(cast))
		for _, member := range cast {
			if _, ok := seen[member.ID]; ok {
				continue
			}
			seen[member.ID] = struct{}{}
			counts[member.ID]++
		}
	}

	for _, member := range candidateCast {
		if counts[member.ID] >= ActorReuseCap {
			return ReuseCheck{Allowed: false, OverusedActor: member.Name}
		}
	}

	return ReuseCheck{Allowed: true}
}
