// Package curator runs the daily roundup: it tallies community votes on the
// bot's engagement comments, marks verified positive posts, honors "stop"
// unsubscribe requests, and publishes the aggregate post.
package curator

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/jacksonkontny/goodvibes/config"
	"github.com/jacksonkontny/goodvibes/internal/models"
	"github.com/jacksonkontny/goodvibes/internal/platform"
	"github.com/jacksonkontny/goodvibes/internal/store"
)

const (
	candidateWindow = 48 * time.Hour
	// A links section shorter than this means nothing was verified and no
	// roundup is published.
	minLinksLength = 3

	stopConfirmation = "You have been unsubscribed. I will not analyze or " +
		"comment on your posts again."
	stopRejection = "Only the author of the post may unsubscribe."
)

var roundupTags = []string{"life", "motivation", "inspiration", "happy", "good-karma"}

type Curator struct {
	cfg      *config.Config
	platform platform.Platform
	store    store.Store
	now      func() time.Time
	sleep    func(d time.Duration)
}

func New(cfg *config.Config, pf platform.Platform, st store.Store) *Curator {
	return &Curator{
		cfg:      cfg,
		platform: pf,
		store:    st,
		now:      time.Now,
		sleep:    time.Sleep,
	}
}

// Run performs one roundup pass. Store access failures abort the pass;
// platform failures on one candidate never spill onto the others.
func (c *Curator) Run(ctx context.Context) error {
	candidates, err := c.store.Find(ctx, store.Filter{
		PosOutliersOnly:  true,
		CreatedAfter:     c.now().Add(-candidateWindow),
		ExcludeInRoundup: true,
	})
	if err != nil {
		return fmt.Errorf("[Curator] failed to query candidates: %w", err)
	}
	slog.Info("[Curator] Starting roundup pass", slog.Int("candidates", len(candidates)))

	var verified []models.StoredPostRecord
	curators := make(map[string]bool)
	for _, record := range candidates {
		ok, postCurators := c.examine(ctx, record)
		if ok {
			verified = append(verified, record)
			for name := range postCurators {
				curators[name] = true
			}
		}
	}

	if len(verified) == 0 {
		slog.Info("[Curator] No verified posts, skipping roundup publication")
		return nil
	}
	return c.publish(ctx, verified, curators)
}

// examine settles one candidate: tallies its votes, applies stop commands,
// and marks the record consumed whether or not it verified.
func (c *Curator) examine(ctx context.Context, record models.StoredPostRecord) (bool, map[string]bool) {
	post := models.Post{
		ID:         record.PostID,
		Author:     record.Author,
		Title:      record.Title,
		Category:   record.Category,
		URL:        record.URL,
		Created:    record.Created,
		IsTopLevel: true,
	}

	refreshed, err := c.platform.Refresh(ctx, post)
	if err != nil {
		slog.Warn("[Curator] Failed to refresh candidate, leaving for next pass",
			slog.String("post_id", post.ID),
			slog.String("error", err.Error()))
		return false, nil
	}

	botComment, found, err := c.findBotComment(ctx, refreshed)
	verifiedPositive := false
	curators := map[string]bool{}
	if err != nil {
		slog.Warn("[Curator] Failed to read candidate replies, leaving for next pass",
			slog.String("post_id", post.ID),
			slog.String("error", err.Error()))
		return false, nil
	}
	if found {
		replies, err := c.platform.Replies(ctx, botComment)
		if err != nil {
			slog.Warn("[Curator] Failed to read vote replies, leaving for next pass",
				slog.String("post_id", post.ID),
				slog.String("error", err.Error()))
			return false, nil
		}

		c.applyStopCommands(ctx, refreshed, replies)

		tally := Tally(replies, c.cfg.ClampVoteWeights)
		verifiedPositive = IsVerifiedPositive(botComment, tally)
		if verifiedPositive {
			curators = c.collectCurators(botComment, replies)
		}
	}

	// Mark consumed regardless of the outcome so the next pass never
	// re-tallies this post.
	err = c.store.Update(ctx, record.PostID, store.Fields{
		InRoundup:        store.BoolPtr(true),
		VerifiedPositive: store.BoolPtr(verifiedPositive),
		NetVotes:         store.IntPtr(refreshed.NetVotes),
	})
	if err != nil {
		slog.Warn("[Curator] Failed to mark candidate consumed",
			slog.String("post_id", record.PostID),
			slog.String("error", err.Error()))
	}
	return verifiedPositive, curators
}

// findBotComment locates the bot's own top level reply on the post. Without
// it the community never voted, so the post cannot be verified.
func (c *Curator) findBotComment(ctx context.Context, post models.Post) (models.Post, bool, error) {
	replies, err := c.platform.Replies(ctx, post)
	if err != nil {
		return models.Post{}, false, err
	}
	for _, reply := range replies {
		if reply.Author == c.cfg.Account {
			return reply, true, nil
		}
	}
	return models.Post{}, false, nil
}

// applyStopCommands honors "stop" replies under the bot's comment. Only the
// post's author may unsubscribe themselves; anyone else gets a rejection.
func (c *Curator) applyStopCommands(ctx context.Context, post models.Post, replies []models.Post) {
	for _, reply := range replies {
		if !replyWords(reply.Body)["stop"] {
			continue
		}
		if reply.Author == post.Author {
			if err := c.store.SetUnsubscribed(ctx, reply.Author, true); err != nil {
				slog.Warn("[Curator] Failed to record unsubscribe",
					slog.String("author", reply.Author),
					slog.String("error", err.Error()))
				continue
			}
			c.reply(ctx, reply, stopConfirmation)
			slog.Info("[Curator] Unsubscribed author", slog.String("author", reply.Author))
		} else {
			c.reply(ctx, reply, stopRejection)
		}
	}
}

func (c *Curator) reply(ctx context.Context, target models.Post, body string) {
	if err := c.platform.Reply(ctx, target, c.cfg.Account, body, c.cfg.Account); err != nil {
		slog.Warn("[Curator] Reply failed",
			slog.String("target_id", target.ID),
			slog.String("error", err.Error()))
	}
	c.sleep(c.cfg.ReplyDelay)
}

// collectCurators credits everyone who voted on the bot's comment or cast a
// yes/no reply under it.
func (c *Curator) collectCurators(botComment models.Post, replies []models.Post) map[string]bool {
	curators := make(map[string]bool)
	for _, vote := range botComment.ActiveVotes {
		curators["@"+vote.Voter] = true
	}
	for _, reply := range replies {
		words := replyWords(reply.Body)
		if words["yes"] || words["no"] {
			curators["@"+reply.Author] = true
		}
	}
	return curators
}

func (c *Curator) publish(ctx context.Context, verified []models.StoredPostRecord, curators map[string]bool) error {
	title := fmt.Sprintf("Top positive articles of the day - %s",
		c.now().Format("2006-01-02"))

	links := make([]string, 0, len(verified))
	authors := make([]string, 0, len(verified))
	for _, record := range verified {
		links = append(links, record.URL)
		authors = append(authors, record.Author)
	}
	linksSection := strings.Join(links, "\n\n")
	if len(linksSection) < minLinksLength {
		slog.Info("[Curator] Links section too small, skipping roundup publication")
		return nil
	}

	intro := "Below are the top uplifting posts of the day. These posts have " +
		"been selected due to their overwhelming positive word choice. The " +
		"articles listed have more positive words than 99.5% of articles " +
		"posted in english on the platform. Go ahead and give these articles " +
		"a read and see if they can improve your life, inspire you and " +
		"improve your day:\n\n"
	authorThankYou := fmt.Sprintf(
		"\n\nThanks to the authors for creating the content: %s\n\n",
		strings.Join(authors, ", "))
	curatorThankYou := fmt.Sprintf(
		"And a very special thanks to the curators that helped ensure this "+
			"content is legitimate: %s", strings.Join(sortedKeys(curators), ", "))

	body := intro + linksSection + authorThankYou + curatorThankYou
	if err := c.platform.Publish(ctx, c.cfg.Account, title, body, roundupTags); err != nil {
		return fmt.Errorf("[Curator] failed to publish roundup: %w", err)
	}
	slog.Info("[Curator] Published roundup",
		slog.String("title", title),
		slog.Int("verified_posts", len(verified)))
	return nil
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
