// Package taste turns a viewer's quick-match picks into a short taste-type
// label plus one reason line per pick. The copy comes from a chat model when
// one is configured; every failure path degrades to deterministic fallback
// copy, so the quick-match flow never blocks on the provider.
package taste

import (
	"context"
	"fmt"
	"strings"

	json "github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/kinoworks/cinedex/internal/domain"
	"github.com/kinoworks/cinedex/internal/logger"
	"github.com/kinoworks/cinedex/internal/metrics"
)

// Fallback copy used whenever the provider is absent, errors, or returns
// something unparseable.
const (
	fallbackLabel  = "장르를 넘나드는 탐험가"
	fallbackReason = "최근 고른 작품들과 결이 비슷한 영화예요."
)

const systemPrompt = "당신은 영화 취향 분석가입니다. 반드시 요청된 JSON 형식으로만 응답하세요."

// Preference summarizes what the viewer liked during quick-match.
type Preference struct {
	TopGenres      []string `json:"topGenres"`
	YearFrom       int      `json:"yearFrom"`
	YearTo         int      `json:"yearTo"`
	AvgLikedRating float64  `json:"avgLikedRating"`
}

// Profile is the generated taste copy: one label, one reason per pick.
type Profile struct {
	Label   string   `json:"label"`
	Reasons []string `json:"reasons"`
}

// Service generates taste profiles.
type Service struct {
	advisor Advisor
}

// New creates a taste service. advisor can be nil; the service then always
// answers with fallback copy.
func New(advisor Advisor) *Service {
	return &Service{advisor: advisor}
}

// Profile produces the taste copy for the given preference and picks. It
// never fails: the worst case is fallback copy sized to the pick list.
func (s *Service) Profile(ctx context.Context, pref Preference, picks []domain.Summary) Profile {
	if s.advisor == nil {
		return fallback(len(picks))
	}

	raw, err := s.advisor.Advise(ctx, systemPrompt, userPrompt(pref, picks))
	if err != nil {
		logger.FromContext(ctx).Warn("taste advisor failed, using fallback copy", zap.Error(err))
		metrics.TasteRequestsTotal.WithLabelValues("fallback").Inc()
		return fallback(len(picks))
	}

	var p Profile
	if err := json.Unmarshal([]byte(raw), &p); err != nil || strings.TrimSpace(p.Label) == "" {
		logger.FromContext(ctx).Warn("unparseable taste completion, using fallback copy", zap.Error(err))
		metrics.TasteRequestsTotal.WithLabelValues("fallback").Inc()
		return fallback(len(picks))
	}

	p.Reasons = fitReasons(p.Reasons, len(picks))
	return p
}

// userPrompt renders the preference summary and picked titles into the
// completion request.
func userPrompt(pref Preference, picks []domain.Summary) string {
	var b strings.Builder
	b.WriteString("사용자의 영화 취향 요약입니다.\n")
	if len(pref.TopGenres) > 0 {
		fmt.Fprintf(&b, "- 선호 장르: %s\n", strings.Join(pref.TopGenres, ", "))
	}
	if pref.YearFrom > 0 || pref.YearTo > 0 {
		fmt.Fprintf(&b, "- 선호 연도대: %d~%d\n", pref.YearFrom, pref.YearTo)
	}
	if pref.AvgLikedRating > 0 {
		fmt.Fprintf(&b, "- 좋아한 작품 평균 평점: %.1f\n", pref.AvgLikedRating)
	}
	b.WriteString("선택한 영화:\n")
	for i, m := range picks {
		fmt.Fprintf(&b, "%d. %s (%s)\n", i+1, m.Title, m.ReleaseDate)
	}
	fmt.Fprintf(&b,
		"위 정보를 바탕으로 이 사용자의 취향 유형을 한 줄 라벨로 짓고, 영화마다 추천 이유를 한 문장씩 작성하세요. "+
			"다음 JSON 형식으로만 응답하세요: {\"label\": \"...\", \"reasons\": [%d개의 문자열]}", len(picks))
	return b.String()
}

// fitReasons pads or trims the reason list to exactly n entries.
func fitReasons(reasons []string, n int) []string {
	out := make([]string, n)
	for i := 0; i < n; i++ {
		if i < len(reasons) && strings.TrimSpace(reasons[i]) != "" {
			out[i] = reasons[i]
			continue
		}
		out[i] = fallbackReason
	}
	return out
}

func fallback(n int) Profile {
	return Profile{Label: fallbackLabel, Reasons: fitReasons(nil, n)}
}
