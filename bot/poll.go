/*
   Copyright (c) 2023, btnmasher
   All rights reserved.
   Use of this source code is governed by a BSD-style
   license that can be found in the LICENSE file.
*/

package bot

import (
	"fmt"
	"strconv"
	"strings"
)

// poll is scoped to the channel it was created in (§3: "channel key"), but
// lives in the bot's single global id space alongside every other poll.
type poll struct {
	id       uint64
	channel  string // lowercased
	question string
	options  []string
	votes    map[string]int // voter nick(lower) -> option index
	closed   bool
}

// newPoll creates "Q | opt1 | opt2 [| ...]" (§4.5 "poll new"), assigning
// the next id out of the bot's single monotonic counter (§3).
func newPoll(b *Bot, chanName, spec string) (*poll, error) {
	parts := strings.Split(spec, "|")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	if len(parts) < 3 {
		return nil, fmt.Errorf("need a question and at least 2 options")
	}

	question := parts[0]
	var options []string
	for _, p := range parts[1:] {
		if p != "" {
			options = append(options, p)
		}
	}
	if len(options) < 2 {
		return nil, fmt.Errorf("need at least 2 non-empty options")
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextPollID++
	p := &poll{
		id:       b.nextPollID,
		channel:  strings.ToLower(chanName),
		question: question,
		options:  options,
		votes:    make(map[string]int),
	}
	b.polls[p.id] = p

	return p, nil
}

// findPoll looks up a poll by id, scoped to chanName (§4.5.2: "polls are
// scoped to a channel"). Callers must hold b.mu.
func findPoll(b *Bot, chanName string, id uint64) (*poll, error) {
	p, ok := b.polls[id]
	if !ok || p.channel != strings.ToLower(chanName) {
		return nil, fmt.Errorf("no such poll %d", id)
	}
	return p, nil
}

func votePoll(b *Bot, chanName string, id uint64, nick string, choice int) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	p, err := findPoll(b, chanName, id)
	if err != nil {
		return err
	}
	if p.closed {
		return fmt.Errorf("poll %d is closed", id)
	}
	if choice < 1 || choice > len(p.options) {
		return fmt.Errorf("option out of range")
	}

	p.votes[strings.ToLower(nick)] = choice - 1
	return nil
}

func showPoll(b *Bot, chanName string, id uint64) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	p, err := findPoll(b, chanName, id)
	if err != nil {
		return "", err
	}

	tally := make([]int, len(p.options))
	for _, choice := range p.votes {
		tally[choice]++
	}

	var b2 strings.Builder
	fmt.Fprintf(&b2, "Poll %d: %s", p.id, p.question)
	for i, opt := range p.options {
		fmt.Fprintf(&b2, " | %d) %s: %d", i+1, opt, tally[i])
	}
	return b2.String(), nil
}

func closePoll(b *Bot, chanName string, id uint64) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	p, err := findPoll(b, chanName, id)
	if err != nil {
		return err
	}
	p.closed = true
	return nil
}

func parsePollID(s string) (uint64, error) {
	return strconv.ParseUint(s, 10, 64)
}
