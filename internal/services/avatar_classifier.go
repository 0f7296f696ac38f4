package services

import "auramind/pkg/models"

// ClassifyAvatar maps a (mood, stress) pair to the companion avatar state.
// Pure and total over [1,10]x[1,10]; the cases are ordered because the ranges
// overlap — first match wins.
func ClassifyAvatar(mood, stress int) models.AvatarState {
	switch {
	case stress > 8 && mood < 5:
		return models.AvatarOverwhelmed
	case stress > 7:
		return models.AvatarAnxious
	case mood >= 8:
		return models.AvatarJoyful
	case mood >= 5:
		return models.AvatarNeutral
	case mood >= 3:
		return models.AvatarSad
	default:
		return models.AvatarExhausted
	}
}
