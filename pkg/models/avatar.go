package models

// AvatarState is the discrete companion-avatar state derived from mood and stress.
type AvatarState string

const (
	AvatarJoyful      AvatarState = "JOYFUL"
	AvatarNeutral     AvatarState = "NEUTRAL"
	AvatarSad         AvatarState = "SAD"
	AvatarExhausted   AvatarState = "EXHAUSTED"
	AvatarAnxious     AvatarState = "ANXIOUS"
	AvatarOverwhelmed AvatarState = "OVERWHELMED"
)
