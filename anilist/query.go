package anilist

// upcomingQuery lists popular titles currently airing.
const upcomingQuery = `
query ($page: Int, $perPage: Int) {
	Page (page: $page, perPage: $perPage) {
		media (type: ANIME, status: RELEASING, sort: [POPULARITY_DESC], isAdult: false) {
			id
			title {
				romaji
				english
				native
			}
			coverImage {
				large
				medium
			}
			bannerImage
			description
			genres
			averageScore
			status
			episodes
			nextAiringEpisode {
				airingAt
				timeUntilAiring
				episode
			}
		}
	}
}
`
