package anilist

import "time"

const fallbackPoster = "https://images.unsplash.com/photo-1578662996442-48f60103fc96?w=400"

// Fallback is the fixed feed shown when Anilist cannot be reached.
func Fallback(now time.Time) []*Upcoming {
	return []*Upcoming{
		{
			ID:              1,
			Title:           "Attack on Titan: Final Season",
			Poster:          fallbackPoster,
			NextEpisode:     12,
			AiringAt:        now.Add(24 * time.Hour),
			TimeUntilAiring: 24 * time.Hour,
			Description:     "La bataille finale pour l'humanité approche...",
			Genres:          []string{"Action", "Drame", "Fantastique"},
			Rating:          9.0,
		},
		{
			ID:              2,
			Title:           "Demon Slayer: Hashira Training Arc",
			Poster:          fallbackPoster,
			NextEpisode:     8,
			AiringAt:        now.Add(48 * time.Hour),
			TimeUntilAiring: 48 * time.Hour,
			Description:     "L'entraînement des Piliers commence...",
			Genres:          []string{"Action", "Surnaturel", "Historique"},
			Rating:          8.7,
		},
	}
}
