package games

import (
	"encoding/json"
	"fmt"
	"strconv"
)

const (
	blackjackTarget      = 21
	blackjackDealerStand = 17
)

var (
	cardSuits = []string{"♠", "♥", "♦", "♣"}
	cardRanks = []string{"A", "2", "3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K"}
)

// Card is a single playing card. It marshals as the compact "K♠" form
// used on the wire and in session blobs.
type Card struct {
	Rank string
	Suit string
}

func (c Card) String() string { return c.Rank + c.Suit }

func (c Card) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

func (c *Card) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}

	runes := []rune(s)
	if len(runes) < 2 {
		return fmt.Errorf("malformed card %q", s)
	}

	c.Rank = string(runes[:len(runes)-1])
	c.Suit = string(runes[len(runes)-1])

	return nil
}

// Score totals a hand: face cards count 10, aces count 11 and downgrade
// to 1 one at a time while the total is over 21.
func Score(hand []Card) int {
	score := 0
	aces := 0

	for _, c := range hand {
		switch c.Rank {
		case "J", "Q", "K":
			score += 10
		case "A":
			aces++
			score += 11
		default:
			n, _ := strconv.Atoi(c.Rank)
			score += n
		}
	}

	for score > blackjackTarget && aces > 0 {
		score -= 10
		aces--
	}

	return score
}

// BlackjackState is a live blackjack round: the undealt remainder of
// the shuffled deck plus both hands.
type BlackjackState struct {
	StakeMinor int64  `json:"stake_minor"`
	Deck       []Card `json:"deck"`
	Player     []Card `json:"player"`
	Dealer     []Card `json:"dealer"`
}

// NewBlackjack shuffles a standard 52-card deck and deals two cards
// each to player and dealer.
func NewBlackjack(r Rand, stakeMinor int64) *BlackjackState {
	deck := make([]Card, 0, len(cardSuits)*len(cardRanks))
	for _, suit := range cardSuits {
		for _, rank := range cardRanks {
			deck = append(deck, Card{Rank: rank, Suit: suit})
		}
	}

	shuffled := make([]Card, len(deck))
	for i, j := range r.Perm(len(deck)) {
		shuffled[i] = deck[j]
	}

	s := &BlackjackState{StakeMinor: stakeMinor, Deck: shuffled}
	s.Player = []Card{s.draw(), s.draw()}
	s.Dealer = []Card{s.draw(), s.draw()}

	return s
}

func (s *BlackjackState) draw() Card {
	c := s.Deck[len(s.Deck)-1]
	s.Deck = s.Deck[:len(s.Deck)-1]

	return c
}

func (s *BlackjackState) PlayerScore() int { return Score(s.Player) }

// UpcardScore scores only the dealer's first card, the one shown to the
// player before stand.
func (s *BlackjackState) UpcardScore() int { return Score(s.Dealer[:1]) }

// Hit draws one card to the player's hand. A score over 21 busts the
// round as a total loss.
func (s *BlackjackState) Hit() (score int, bust bool) {
	s.Player = append(s.Player, s.draw())
	score = s.PlayerScore()

	return score, score > blackjackTarget
}

type BlackjackOutcome string

const (
	BlackjackWin  BlackjackOutcome = "win"
	BlackjackLose BlackjackOutcome = "lose"
	BlackjackPush BlackjackOutcome = "push"
)

type BlackjackFinal struct {
	PlayerScore int
	DealerScore int
	Outcome     BlackjackOutcome
	Multiplier  float64
}

// Stand plays out the dealer (draw while under 17) and compares scores:
// dealer bust or a higher player score wins 2x, a tie pushes the stake
// back at 1x.
func (s *BlackjackState) Stand() BlackjackFinal {
	for Score(s.Dealer) < blackjackDealerStand {
		s.Dealer = append(s.Dealer, s.draw())
	}

	playerScore := s.PlayerScore()
	dealerScore := Score(s.Dealer)

	final := BlackjackFinal{PlayerScore: playerScore, DealerScore: dealerScore}

	switch {
	case dealerScore > blackjackTarget || playerScore > dealerScore:
		final.Outcome = BlackjackWin
		final.Multiplier = 2.0
	case playerScore < dealerScore:
		final.Outcome = BlackjackLose
	default:
		final.Outcome = BlackjackPush
		final.Multiplier = 1.0
	}

	return final
}
