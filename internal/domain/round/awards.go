package round

import (
	"github.com/okian/molkky/internal/domain/model"
)

// Award is an end-of-round achievement tag.
type Award string

// Known awards.
const (
	// Maximalist: most 12s.
	Maximalist Award = "maximalist"
	// Minimalist: most 1s.
	Minimalist Award = "minimalist"
	// Unlucky: most misses.
	Unlucky Award = "unlucky"
	// Spotless: no misses.
	Spotless Award = "spotless"
	// SoClose: ended one point short of the target.
	SoClose Award = "so_close"
	// Oops: ended on zero.
	Oops Award = "oops"
)

// AllAwards lists every award in display order.
func AllAwards() []Award {
	return []Award{Maximalist, Minimalist, Unlucky, Spotless, SoClose, Oops}
}

// AwardResult is one awarded achievement. Count is set for the "most"
// awards and holds the winning tally.
type AwardResult struct {
	Award   Award
	Winners []model.Contender
	Count   *int
}

// Awards computes the achievements of the round from its attempt history.
// Awards nobody earned are left out; winners are in seating order.
func (r *Round) Awards() []AwardResult {
	twelves := map[string]int{}
	ones := map[string]int{}
	zeroes := map[string]int{}
	for _, a := range r.attempts {
		switch a.Score {
		case model.MaxThrowScore:
			twelves[a.ContenderID]++
		case 1:
			ones[a.ContenderID]++
		case model.MissScore:
			zeroes[a.ContenderID]++
		}
	}

	var out []AwardResult
	for _, most := range []struct {
		award Award
		tally map[string]int
	}{
		{Maximalist, twelves},
		{Minimalist, ones},
		{Unlucky, zeroes},
	} {
		if winners, count, ok := r.mostOf(most.tally); ok {
			out = append(out, AwardResult{Award: most.award, Winners: winners, Count: &count})
		}
	}

	// Seats are skipped only while they have misses; from the first clean
	// seat on, everyone is listed.
	spotless := r.contenders
	for len(spotless) > 0 && zeroes[spotless[0].ID] > 0 {
		spotless = spotless[1:]
	}
	if len(spotless) > 0 {
		out = append(out, AwardResult{Award: Spotless, Winners: append([]model.Contender(nil), spotless...)})
	}

	var soClose, oops []model.Contender
	for _, s := range TurnOrder(r.computeScores()) {
		if s.TotalScore == r.config.TargetScore-1 {
			soClose = append(soClose, s.Contender)
		}
		if s.TotalScore == 0 {
			oops = append(oops, s.Contender)
		}
	}
	if len(soClose) > 0 {
		out = append(out, AwardResult{Award: SoClose, Winners: soClose})
	}
	if len(oops) > 0 {
		out = append(out, AwardResult{Award: Oops, Winners: oops})
	}
	return out
}

// mostOf returns every contender tied for the highest tally and that tally.
// Only contenders present in tally compete.
func (r *Round) mostOf(tally map[string]int) ([]model.Contender, int, bool) {
	if len(tally) == 0 {
		return nil, 0, false
	}
	best := -1
	for _, n := range tally {
		if n > best {
			best = n
		}
	}
	var winners []model.Contender
	for _, c := range r.contenders {
		if n, ok := tally[c.ID]; ok && n == best {
			winners = append(winners, c)
		}
	}
	return winners, best, true
}
