package engine

import (
	"fmt"

	"github.com/jacksonkontny/goodvibes/internal/models"
)

const replyBodyFooter = "Reply 'stop' to this comment and I will never " +
	"analyze one of your posts again.\n"

func intro(author string) string {
	return fmt.Sprintf(
		"Thanks for the post, %s.\n\n"+
			"This bot runs through hundreds of posts per day selecting a small "+
			"percentage of posts that have exceptional positivity.\n\n", author)
}

const reasonForPosting = "Your post has been selected and upvoted because " +
	"it has a high concentration of positive words that give feel-good vibes. " +
	"Thank you for creating content that focuses on the bright side.\n\n" +
	"Your post has also been entered to be included in a daily roundup of " +
	"positive posts.\n\n"

const voteCallToAction = "Please comment 'yes' or 'no' if you feel that my " +
	"bot is correct in its judgement of this post. Your comments will be used " +
	"to determine if this article belongs in the curated list. Over time, " +
	"your feedback will be used to improve the judgement of this bot.\n\n"

// peakSentences calls out the most positive and most negative sentence when
// either actually leans that way.
func peakSentences(profile models.SentimentProfile) string {
	var out string
	if max := profile.MaxNormalized(); max > 0 {
		out += fmt.Sprintf(
			"The most positive sentence in your post had a normalized "+
				"positivity score of %v:\n\n\"%s\"\n\n", max, profile.PeakPositive())
	}
	if min := profile.MinNormalized(); min < 0 {
		out += fmt.Sprintf(
			"The most negative sentence in your post had a normalized "+
				"negativity score of %v:\n\n\"%s\"\n\n", min, profile.PeakNegative())
	}
	return out
}

// Description assembles the engagement reply body for a positive outlier.
func Description(author string, profile models.SentimentProfile) string {
	return intro(author) + reasonForPosting + peakSentences(profile) +
		voteCallToAction + replyBodyFooter
}
