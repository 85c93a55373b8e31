package curator

import (
	"strings"
	"unicode"

	"github.com/jacksonkontny/goodvibes/internal/models"
)

// VoteTally aggregates the yes/no replies under the bot's comment. Each
// reply contributes 1 + its net votes, so a downvoted reply counts for less
// and, unless clamping is enabled, can count negatively.
type VoteTally struct {
	YesWeight int
	NoWeight  int
}

// Tally weighs every reply that contains a bare "yes" or "no" word. A reply
// containing both words counts toward both sides, same as a voter who
// contradicts themselves.
func Tally(replies []models.Post, clamp bool) VoteTally {
	var tally VoteTally
	for _, reply := range replies {
		words := replyWords(reply.Body)
		weight := 1 + reply.NetVotes
		if clamp && weight < 0 {
			weight = 0
		}
		if words["yes"] {
			tally.YesWeight += weight
		}
		if words["no"] {
			tally.NoWeight += weight
		}
	}
	return tally
}

// IsVerifiedPositive applies the community verification rule: the bot's own
// comment carries positive net votes, or the weighted yes replies outnumber
// the weighted no replies.
func IsVerifiedPositive(botComment models.Post, tally VoteTally) bool {
	if botComment.NetVotes > 0 {
		return true
	}
	return tally.YesWeight > tally.NoWeight
}

// replyWords lowercases the reply body, strips punctuation, and returns the
// word set, so "Yes!" and "...no." still register as votes.
func replyWords(body string) map[string]bool {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsPunct(r) {
			return -1
		}
		return r
	}, strings.ToLower(body))

	words := make(map[string]bool)
	for _, w := range strings.Fields(cleaned) {
		words[w] = true
	}
	return words
}
