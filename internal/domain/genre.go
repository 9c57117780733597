package domain

// GenreAnimation is the TMDB genre id for animated titles.
const GenreAnimation = 16

// GenreOption is one entry of the genre taxonomy: TMDB id + localized label.
type GenreOption struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// genreOptions is the fixed taxonomy shown in filter UIs. Hand-maintained,
// never derived from the index.
var genreOptions = []GenreOption{
	{28, "액션"},
	{12, "모험"},
	{16, "애니메이션"},
	{35, "코미디"},
	{80, "범죄"},
	{99, "다큐멘터리"},
	{18, "드라마"},
	{10751, "가족"},
	{14, "판타지"},
	{36, "역사"},
	{27, "공포"},
	{10402, "음악"},
	{9648, "미스터리"},
	{10749, "로맨스"},
	{878, "SF"},
	{10770, "TV 영화"},
	{53, "스릴러"},
	{10752, "전쟁"},
	{37, "서부"},
}

// GenreOptions returns a copy of the genre taxonomy.
func GenreOptions() []GenreOption {
	out := make([]GenreOption, len(genreOptions))
	copy(out, genreOptions)
	return out
}

// restrictedCertifications gates search results for non-adult viewers.
var restrictedCertifications = []string{"18", "19+", "19", "청소년관람불가"}

// recommendExcludedCertifications is the exclusion set the recommender applies
// unconditionally. Kept separate from the search set: the corpus carries both
// Korean and US rating-board codes on recommendation candidates.
var recommendExcludedCertifications = []string{"19", "18", "R", "Restricted"}

// RestrictedCertifications returns the certification codes hidden from
// non-adult viewers.
func RestrictedCertifications() []string {
	out := make([]string, len(restrictedCertifications))
	copy(out, restrictedCertifications)
	return out
}

// RecommendExcludedCertifications returns the certification codes the
// recommender never surfaces.
func RecommendExcludedCertifications() []string {
	out := make([]string, len(recommendExcludedCertifications))
	copy(out, recommendExcludedCertifications)
	return out
}

// IsRestrictedCertification reports whether cert is hidden from non-adult viewers.
func IsRestrictedCertification(cert string) bool {
	for _, c := range restrictedCertifications {
		if c == cert {
			return true
		}
	}
	return false
}
