package game

type playerState struct {
	name string

	moves               int
	forfeits            int
	consecutiveForfeits int
}

func newPlayerState(name string) *playerState {
	return &playerState{name: name}
}
