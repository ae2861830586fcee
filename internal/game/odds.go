package game

import "math"

// Power is the heuristic strength of a player: health, plus one and a half
// times the summed attack and health of their board, plus two per card in
// hand.
func Power(p *Player) float64 {
	board := 0
	for _, u := range p.Board {
		board += u.Atk + u.HP
	}
	return float64(p.Health) + 1.5*float64(board) + 2*float64(len(p.Hand))
}

// WinProbability estimates player 0's chance of winning as a percentage in
// [5, 95]. It is 50 when neither player has any power.
func WinProbability(m *Match) int {
	p0 := Power(&m.Players[0])
	total := p0 + Power(&m.Players[1])
	if total == 0 {
		return 50
	}
	prob := math.Round(100 * p0 / total)
	if math.IsNaN(prob) {
		return 50
	}
	return int(max(5, min(95, prob)))
}
