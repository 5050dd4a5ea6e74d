package service

import (
	"github.com/okian/molkky/internal/domain/model"
	"github.com/okian/molkky/internal/domain/round"
	"github.com/okian/molkky/internal/domain/types"
)

func playerView(p model.Player) types.Player {
	return types.Player{ID: p.ID, Name: p.Name}
}

func rulesView(c round.Config) types.Rules {
	return types.Rules{
		TargetScore:              c.TargetScore,
		ResetScore:               c.ResetScore,
		CanBeReset:               c.CanBeReset,
		MissesForElimination:     c.MissesForElimination,
		ContinueUntilAllFinished: c.ContinueUntilAllFinished,
	}
}

func contenderView(cs round.ContenderScore) types.ContenderStatus {
	v := types.ContenderStatus{
		ID:           cs.Contender.ID,
		PlayerID:     cs.Contender.PlayerID,
		Name:         cs.Contender.Name,
		Seat:         cs.Contender.OrderKey,
		Throws:       make([]int, len(cs.Attempts)),
		TotalScore:   cs.TotalScore,
		IsInWarning:  cs.IsInWarning,
		IsEliminated: cs.IsEliminated,
		IsFinished:   cs.IsFinished(),
	}
	for i, a := range cs.Attempts {
		v.Throws[i] = a.Score
	}
	if cs.FinishPosition >= 0 {
		pos := cs.FinishPosition
		v.FinishPosition = &pos
	}
	return v
}

func roundView(r *round.Round) types.Round {
	scores := r.ContenderScores()
	v := types.Round{
		ID:         r.ID(),
		Date:       r.Date(),
		Rules:      rulesView(r.Config()),
		Contenders: make([]types.ContenderStatus, len(scores)),
		Attempts:   len(r.Attempts()),
		CanUndo:    len(r.Attempts()) > 0,
		CanRedo:    len(r.UndoStack()) > 0,
		SortByTurn: r.SortByTurn(),
		EndedEarly: r.EndedEarly(),
		HasEnded:   r.HasGameEnded(),
	}
	for i, cs := range scores {
		v.Contenders[i] = contenderView(cs)
	}
	if c, ok := r.CurrentContender(); ok {
		v.CurrentContenderID = c.ID
	}
	if c, ok := r.FindNextContender(0); ok {
		v.NextContenderID = c.ID
	}
	return v
}

func summaryView(r *round.Round) types.RoundSummary {
	cs := r.Contenders()
	v := types.RoundSummary{
		ID:       r.ID(),
		Date:     r.Date(),
		Names:    make([]string, len(cs)),
		Attempts: len(r.Attempts()),
		HasEnded: r.HasGameEnded(),
	}
	for i, c := range cs {
		v.Names[i] = c.Name
	}
	if v.HasEnded {
		if ps := r.SortedPlacements(); len(ps) > 0 {
			v.Winner = ps[0].Score.Contender.Name
		}
	}
	return v
}

func standingsView(r *round.Round) []types.Standing {
	ps := r.SortedPlacements()
	out := make([]types.Standing, len(ps))
	for i, p := range ps {
		out[i] = types.Standing{Place: p.Place, Contender: contenderView(p.Score)}
	}
	return out
}

func awardsView(r *round.Round) []types.Award {
	results := r.Awards()
	out := make([]types.Award, len(results))
	for i, a := range results {
		out[i] = types.Award{Award: string(a.Award), Winners: make([]types.AwardWinner, len(a.Winners)), Count: a.Count}
		for j, w := range a.Winners {
			out[i].Winners[j] = types.AwardWinner{ContenderID: w.ID, PlayerID: w.PlayerID, Name: w.Name}
		}
	}
	return out
}
