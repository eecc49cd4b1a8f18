package domain

// Speaker identifies the author of a prompt turn as the generative backend
// understands it.
type Speaker string

// Possible turn speakers
const (
	SpeakerUser  Speaker = "user"
	SpeakerModel Speaker = "model"
)

// Turn is one message of an assembled prompt. Turns are rebuilt for every
// call and never persisted.
type Turn struct {
	Speaker Speaker
	Text    string
}

// SpeakerFor maps a stored context role onto a prompt speaker.
// Anything that is not a user message is treated as the model's reply.
func SpeakerFor(role Role) Speaker {
	if role == RoleUser {
		return SpeakerUser
	}
	return SpeakerModel
}
