package audio

// The interface for anything that plays the earthquake rumble.
//
// The method set matches ebiten's *audio.Player, so a player can be
// passed to the engine directly:
//
//	player, _ := audioContext.NewPlayer(NewRumble(seed))
//	engine.SetAudio(player)
type Sink interface {
	SetVolume(volume float64)
	Play()
	Pause()
	IsPlaying() bool
}

// Null is a sink that only records calls. Useful for headless hosts
// and tests.
type Null struct {
	Volume  float64
	Playing bool
	Plays   int
	Pauses  int
}

func (self *Null) SetVolume(volume float64) { self.Volume = volume }
func (self *Null) IsPlaying() bool          { return self.Playing }

func (self *Null) Play() {
	self.Playing = true
	self.Plays += 1
}

func (self *Null) Pause() {
	self.Playing = false
	self.Pauses += 1
}
