package engine

import (
	"context"
	"time"

	"github.com/abhisek/arise/internal/apperr"
	"github.com/abhisek/arise/internal/ledger"
	"github.com/abhisek/arise/internal/quests"
	"github.com/abhisek/arise/internal/skills"
	"github.com/abhisek/arise/internal/store"
)

func (e *Engine) loadQuestSet(ctx context.Context, kv store.KV, userID string) (*quests.DailySet, error) {
	var set quests.DailySet
	ok, err := kv.Get(ctx, store.BucketDailyQuests, userID, &set)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return &set, nil
}

func skillKeysOrAll(keys []skills.Key) []skills.Key {
	if len(keys) == 0 {
		return skills.All()
	}
	return keys
}

// GenerateDailyQuests issues a fresh set for date, replacing any stored
// set. An empty skillKeys draws from every skill.
func (e *Engine) GenerateDailyQuests(ctx context.Context, userID string, skillKeys []skills.Key, date string) (*quests.DailySet, error) {
	if err := validateUserID(userID); err != nil {
		return nil, err
	}
	unlock := e.lockUser(userID)
	defer unlock()

	if _, err := e.loadUser(ctx, e.kv, userID); err != nil {
		return nil, err
	}
	return e.generateLocked(ctx, userID, skillKeys, date)
}

func (e *Engine) generateLocked(ctx context.Context, userID string, skillKeys []skills.Key, date string) (*quests.DailySet, error) {
	set, err := e.gen.Generate(skillKeysOrAll(skillKeys), date)
	if err != nil {
		return nil, err
	}
	if err := e.kv.Put(ctx, store.BucketDailyQuests, userID, set); err != nil {
		return nil, err
	}
	e.log.Debug().Str("user", userID).Str("date", date).Msg("daily quests generated")
	return set, nil
}

// GetOrRegenerateDailyQuests returns the stored set when it was issued on
// today, and otherwise generates and stores a new one.
func (e *Engine) GetOrRegenerateDailyQuests(ctx context.Context, userID string, skillKeys []skills.Key, today string) (*quests.DailySet, error) {
	if err := validateUserID(userID); err != nil {
		return nil, err
	}
	unlock := e.lockUser(userID)
	defer unlock()

	if _, err := e.loadUser(ctx, e.kv, userID); err != nil {
		return nil, err
	}
	set, err := e.loadQuestSet(ctx, e.kv, userID)
	if err != nil {
		return nil, err
	}
	if set.ValidFor(today) {
		return set, nil
	}
	return e.generateLocked(ctx, userID, skillKeys, today)
}

// TodaysQuests is GetOrRegenerateDailyQuests over every skill for the
// engine's current date.
func (e *Engine) TodaysQuests(ctx context.Context, userID string) (*quests.DailySet, error) {
	return e.GetOrRegenerateDailyQuests(ctx, userID, nil, e.Today())
}

// QuestResult is the outcome of completing a quest.
type QuestResult struct {
	Quest     quests.Quest `json:"quest"`
	User      *ledger.User `json:"user"`
	LeveledUp bool         `json:"leveledUp"`
}

// CompleteQuest marks a quest in today's set completed, awards its XP to
// the quest's skill and to the user's total. A missing set, an unknown
// quest, and an already completed quest are all NotFound, with nothing
// changed.
func (e *Engine) CompleteQuest(ctx context.Context, userID, questID string) (*QuestResult, error) {
	if err := validateUserID(userID); err != nil {
		return nil, err
	}
	unlock := e.lockUser(userID)
	defer unlock()

	now := e.now()
	today := quests.DateKey(now, e.loc)

	var res *QuestResult
	var award ledger.Award
	err := e.kv.Update(ctx, func(tx store.KV) error {
		u, err := e.loadUser(ctx, tx, userID)
		if err != nil {
			return err
		}
		set, err := e.loadQuestSet(ctx, tx, userID)
		if err != nil {
			return err
		}
		if !set.ValidFor(today) {
			return &apperr.NotFoundError{Kind: "quest set", ID: userID, Reason: "no quests issued for " + today}
		}

		q, err := set.Complete(questID, now)
		if err != nil {
			return err
		}
		award, err = u.ApplyXP(q.Skill, q.XPReward, now)
		if err != nil {
			return err
		}
		if err := u.CheckInvariants(); err != nil {
			return err
		}
		u.AddTotalXP(q.XPReward, now)

		if err := tx.Put(ctx, store.BucketDailyQuests, userID, set); err != nil {
			return err
		}
		if err := tx.Put(ctx, store.BucketUsers, userID, u); err != nil {
			return err
		}
		res = &QuestResult{Quest: q, User: u, LeveledUp: award.LeveledUp()}
		return nil
	})
	if err != nil {
		return nil, err
	}

	e.metrics.QuestCompleted(string(res.Quest.Skill))
	e.recordAward(userID, res.Quest.Skill, "quest", res.Quest.XPReward, award.LevelsGained)
	return res, nil
}

// ResetDailyQuests clears every stored quest set and records the reset
// time. It waits for in-flight user mutations and blocks new ones until
// it finishes. Returns the number of sets removed.
func (e *Engine) ResetDailyQuests(ctx context.Context) (int, error) {
	e.resetMu.Lock()
	defer e.resetMu.Unlock()

	now := e.now()
	var removed int
	err := e.kv.Update(ctx, func(tx store.KV) error {
		n, err := tx.Clear(ctx, store.BucketDailyQuests)
		if err != nil {
			return err
		}
		removed = n
		return tx.Put(ctx, store.BucketSystem, store.KeyLastQuestReset, now.UTC().Format(time.RFC3339Nano))
	})
	if err != nil {
		return 0, err
	}

	e.metrics.QuestReset()
	e.log.Info().Int("removed", removed).Msg("daily quests reset")
	return removed, nil
}
