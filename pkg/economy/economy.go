// Package economy holds the derived-value calculations every rendering
// surface depends on: discount aggregation, discounted pricing, and
// affordability with gold substitution. Everything here is a pure
// function over plain records and is safe to call from any goroutine.
package economy

import (
	"fmt"

	"github.com/calebwray/gemtable/pkg/game/types"
)

// Entry is one color/amount pair of a price in canonical order.
type Entry struct {
	Color  types.Color
	Amount int
}

// OrderedEntries returns the price's entries filtered to the six known
// token colors and sorted in canonical color order. Unknown colors are
// dropped silently: upstream payloads may carry extra keys and those
// must not break rendering.
func OrderedEntries(price types.Price) []Entry {
	entries := make([]Entry, 0, len(price))
	for _, color := range types.ColorOrder {
		if amount, ok := price[color]; ok {
			entries = append(entries, Entry{Color: color, Amount: amount})
		}
	}
	return entries
}

// PlayerDiscount folds the player's developments into a per-color
// discount total over the five card colors. The accumulator always
// carries all five colors. A nil player or an unknown card id degrades
// to zeros so rendering stays alive while state is still partial.
func PlayerDiscount(player *types.Player, cards map[int]types.GameCard) types.Price {
	discount := types.Price{}
	for _, color := range types.CardColors {
		discount[color] = 0
	}
	if player == nil {
		return discount
	}
	for _, cardID := range player.Developments {
		card, ok := cards[cardID]
		if !ok {
			continue
		}
		discount[card.Discount]++
	}
	return discount
}

// PriceAfterDiscount applies a discount to a price, clamping each color
// at zero. Colors the discount does not cover (gold in particular) pass
// through unchanged.
func PriceAfterDiscount(price, discount types.Price) types.Price {
	adjusted := types.Price{}
	for color, amount := range price {
		reduced := amount - discount[color]
		if reduced < 0 {
			reduced = 0
		}
		adjusted[color] = reduced
	}
	return adjusted
}

// IsFree reports whether every amount in the price is zero.
func IsFree(price types.Price) bool {
	for _, amount := range price {
		if amount != 0 {
			return false
		}
	}
	return true
}

// PlayerScore sums the scores of the player's developments. Noble
// bonuses are deliberately excluded; see TotalScore.
func PlayerScore(player *types.Player, cards map[int]types.GameCard) int {
	if player == nil {
		return 0
	}
	score := 0
	for _, cardID := range player.Developments {
		score += cards[cardID].Score
	}
	return score
}

// TotalScore is PlayerScore plus the bonus of the player's claimed
// noble, if any.
func TotalScore(player *types.Player, cards map[int]types.GameCard, collections map[int]types.Noble) int {
	score := PlayerScore(player, cards)
	if player != nil && player.AttainedCollection != nil {
		score += collections[*player.AttainedCollection].Score
	}
	return score
}

// CanAfford reports whether the player's wallet covers the discounted
// price once gold tokens substitute for missing colors. The check sums
// the positive per-color deficits and compares against the gold count:
// surplus in one color never offsets a deficit in another, and each
// gold token covers exactly one missing token. This is a feasibility
// test only; which colors gold actually covers is the caller's choice.
func CanAfford(player *types.Player, priceAfterDiscount types.Price) bool {
	if player == nil {
		return false
	}
	goldNeeded := 0
	for color, amount := range priceAfterDiscount {
		deficit := amount - player.Wallet.Get(color)
		if deficit > 0 {
			goldNeeded += deficit
		}
	}
	return player.Wallet.Gold >= goldNeeded
}

// ApplyGoldSubstitution subtracts a per-color gold allocation from a
// discounted price. No clamping is performed: callers must ensure the
// allocation fits the price and the player's gold (see
// ValidateGoldUsage), otherwise amounts can go negative.
func ApplyGoldSubstitution(priceAfterDiscount, goldUsage types.Price) types.Price {
	result := types.Price{}
	for color, amount := range priceAfterDiscount {
		result[color] = amount - goldUsage[color]
	}
	return result
}

// ValidateGoldUsage checks a gold allocation against the discounted
// price and the player's wallet before it is turned into a purchase
// command. Violations stay local; they must never reach the wire.
func ValidateGoldUsage(player *types.Player, priceAfterDiscount, goldUsage types.Price) error {
	if player == nil {
		return fmt.Errorf("no player to pay with")
	}
	total := 0
	for color, amount := range goldUsage {
		if !types.IsValidColor(color) || color == types.ColorGold {
			return fmt.Errorf("gold cannot substitute for %q", color)
		}
		if amount < 0 {
			return fmt.Errorf("negative gold allocation for %s", color)
		}
		if amount > priceAfterDiscount[color] {
			return fmt.Errorf("gold allocation for %s exceeds its price", color)
		}
		total += amount
	}
	if total > player.Wallet.Gold {
		return fmt.Errorf("gold allocation %d exceeds wallet gold %d", total, player.Wallet.Gold)
	}
	return nil
}

// PriceSum totals the amounts of a price.
func PriceSum(price types.Price) int {
	sum := 0
	for _, amount := range price {
		sum += amount
	}
	return sum
}

// DropZeros returns the price without its zero (or negative) entries.
// Display helper for token badges.
func DropZeros(price types.Price) types.Price {
	out := types.Price{}
	for color, amount := range price {
		if amount > 0 {
			out[color] = amount
		}
	}
	return out
}
