/*
   Copyright (c) 2023, btnmasher
   All rights reserved.
   Use of this source code is governed by a BSD-style
   license that can be found in the LICENSE file.
*/

package bot

import (
	"regexp"
	"strconv"
	"time"

	"github.com/btnmasher/ircrelay"
)

type reminder struct {
	due   time.Time
	where string
	nick  string
	text  string
}

var durationPart = regexp.MustCompile(`([0-9]+)([dhms])`)

// parseDuration parses a compact duration like "1d2h30m" (§4.5 "remind").
// Returns false if the string contains no recognized part.
func parseDuration(s string) (time.Duration, bool) {
	matches := durationPart.FindAllStringSubmatch(s, -1)
	if len(matches) == 0 {
		return 0, false
	}

	var total time.Duration
	for _, m := range matches {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			return 0, false
		}

		var unit time.Duration
		switch m[2] {
		case "d":
			unit = 24 * time.Hour
		case "h":
			unit = time.Hour
		case "m":
			unit = time.Minute
		case "s":
			unit = time.Second
		}
		total += time.Duration(n) * unit
	}

	return total, true
}

// enqueueReminder schedules text to be delivered to where once due.
func (b *Bot) enqueueReminder(where, nick, text string, in time.Duration) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.reminders = append(b.reminders, reminder{
		due:   time.Now().Add(in),
		where: where,
		nick:  nick,
		text:  text,
	})
}

// deliverDueReminders sends every reminder whose due time has passed and
// removes it (§4.5.1). Runs at the top of every PRIVMSG hook.
func (b *Bot) deliverDueReminders(srv *ircrelay.Server) {
	now := time.Now()

	b.mu.Lock()
	var due []reminder
	remaining := b.reminders[:0]
	for _, r := range b.reminders {
		if !r.due.After(now) {
			due = append(due, r)
		} else {
			remaining = append(remaining, r)
		}
	}
	b.reminders = remaining
	b.mu.Unlock()

	for _, r := range due {
		srv.BotReply(r.where, b.nick, "Reminder for "+r.nick+": "+r.text)
	}
}
