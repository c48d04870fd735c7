/*
   Copyright (c) 2023, btnmasher
   All rights reserved.
   Use of this source code is governed by a BSD-style
   license that can be found in the LICENSE file.
*/

package bot

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/btnmasher/ircrelay"
)

type handlerFunc func(b *Bot, srv *ircrelay.Server, c *ircrelay.Client, target, arg string)

var commandTable = map[string]handlerFunc{
	"help":     cmdHelp,
	"commands": cmdCommands,
	"about":    cmdAbout,
	"ping":     cmdPing,
	"echo":     cmdEcho,
	"who":      cmdWho,
	"modes":    cmdModes,
	"uptime":   cmdUptime,
	"roll":     cmdRoll,
	"8ball":    cmdEightBall,
	"choose":   cmdChoose,
	"seen":     cmdSeen,
	"remind":   cmdRemind,
	"poll":     cmdPoll,
	"calc":     cmdCalc,
	"op":       cmdOp,
	"deop":     cmdDeop,
	"kick":     cmdKick,
	"topic":    cmdTopic,
}

var eightBallAnswers = []string{
	"It is certain.", "It is decidedly so.", "Without a doubt.",
	"Yes, definitely.", "You may rely on it.", "As I see it, yes.",
	"Most likely.", "Outlook good.", "Yes.", "Signs point to yes.",
	"Reply hazy, try again.", "Ask again later.", "Better not tell you now.",
	"Cannot predict now.", "Concentrate and ask again.", "Don't count on it.",
	"My reply is no.", "My sources say no.", "Outlook not so good.",
	"Very doubtful.",
}

func cmdHelp(b *Bot, srv *ircrelay.Server, c *ircrelay.Client, target, arg string) {
	if arg == "" {
		srv.BotReply(target, b.nick, "Try \"!commands\" for a list, or \"!help <command>\" for detail.")
		return
	}
	srv.BotReply(target, b.nick, "!"+arg+": see \"!commands\" for the full list.")
}

func cmdCommands(b *Bot, srv *ircrelay.Server, c *ircrelay.Client, target, arg string) {
	names := make([]string, 0, len(commandTable))
	for name := range commandTable {
		names = append(names, name)
	}
	srv.BotReply(target, b.nick, "Commands: "+strings.Join(names, ", "))
}

func cmdAbout(b *Bot, srv *ircrelay.Server, c *ircrelay.Client, target, arg string) {
	srv.BotReply(target, b.nick, "I'm "+b.nick+", a channel assistant.")
}

func cmdPing(b *Bot, srv *ircrelay.Server, c *ircrelay.Client, target, arg string) {
	srv.BotReply(target, b.nick, "Pong!")
}

func cmdEcho(b *Bot, srv *ircrelay.Server, c *ircrelay.Client, target, arg string) {
	if arg == "" {
		return
	}
	srv.BotReply(target, b.nick, arg)
}

func cmdWho(b *Bot, srv *ircrelay.Server, c *ircrelay.Client, target, arg string) {
	srv.BotReply(target, b.nick, "Ask the server for NAMES; I only watch channels, I don't list them myself.")
}

func cmdModes(b *Bot, srv *ircrelay.Server, c *ircrelay.Client, target, arg string) {
	srv.BotReply(target, b.nick, "Channel modes: +i invite-only, +t topic locked to ops, +k keyed, +l user limit.")
}

func cmdUptime(b *Bot, srv *ircrelay.Server, c *ircrelay.Client, target, arg string) {
	srv.BotReply(target, b.nick, "Up "+time.Since(b.startedAt).Round(time.Second).String())
}

func cmdRoll(b *Bot, srv *ircrelay.Server, c *ircrelay.Client, target, arg string) {
	x, y := 1, 6

	if arg != "" {
		dice, sides, ok := parseDice(arg)
		if !ok {
			srv.BotReply(target, b.nick, "usage: roll [XdY]")
			return
		}
		x, y = dice, sides
	}

	if x < 1 {
		x = 1
	}
	if x > 50 {
		x = 50
	}
	if y < 1 {
		y = 1
	}

	rolls := make([]int, x)
	sum := 0
	for i := 0; i < x; i++ {
		rolls[i] = rand.Intn(y) + 1
		sum += rolls[i]
	}

	strs := make([]string, x)
	for i, r := range rolls {
		strs[i] = strconv.Itoa(r)
	}
	srv.BotReply(target, b.nick, fmt.Sprintf("[%s] = %d", strings.Join(strs, ", "), sum))
}

func parseDice(s string) (x, y int, ok bool) {
	before, after, found := strings.Cut(strings.ToLower(s), "d")
	if !found {
		return 0, 0, false
	}
	x, err1 := strconv.Atoi(before)
	y, err2 := strconv.Atoi(after)
	if err1 != nil || err2 != nil {
		return 0, 0, false
	}
	return x, y, true
}

func cmdEightBall(b *Bot, srv *ircrelay.Server, c *ircrelay.Client, target, arg string) {
	srv.BotReply(target, b.nick, eightBallAnswers[rand.Intn(len(eightBallAnswers))])
}

func cmdChoose(b *Bot, srv *ircrelay.Server, c *ircrelay.Client, target, arg string) {
	parts := strings.Split(arg, "|")
	var options []string
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			options = append(options, p)
		}
	}
	if len(options) < 2 {
		srv.BotReply(target, b.nick, "usage: choose a|b|c (at least 2 options)")
		return
	}
	srv.BotReply(target, b.nick, options[rand.Intn(len(options))])
}

func cmdSeen(b *Bot, srv *ircrelay.Server, c *ircrelay.Client, target, arg string) {
	if arg == "" {
		srv.BotReply(target, b.nick, "usage: seen <nick>")
		return
	}
	when, ok := b.seenAt(target, arg)
	if !ok {
		srv.BotReply(target, b.nick, "I haven't seen "+arg+" here.")
		return
	}
	srv.BotReply(target, b.nick, arg+" was last seen "+time.Since(when).Round(time.Second).String()+" ago.")
}

func cmdRemind(b *Bot, srv *ircrelay.Server, c *ircrelay.Client, target, arg string) {
	durStr, text, found := strings.Cut(arg, " ")
	if !found || text == "" {
		srv.BotReply(target, b.nick, "usage: remind <duration> <message>")
		return
	}

	dur, ok := parseDuration(durStr)
	if !ok {
		srv.BotReply(target, b.nick, "couldn't parse duration \""+durStr+"\"")
		return
	}

	b.enqueueReminder(target, c.Nick(), text, dur)
	srv.BotReply(target, b.nick, "Okay, "+c.Nick()+", I'll remind you in "+dur.String()+".")
}

func cmdPoll(b *Bot, srv *ircrelay.Server, c *ircrelay.Client, target, arg string) {
	sub, rest, _ := strings.Cut(arg, " ")
	sub = strings.ToLower(sub)

	switch sub {
	case "new":
		p, err := newPoll(b, target, rest)
		if err != nil {
			srv.BotReply(target, b.nick, "poll new: "+err.Error())
			return
		}
		srv.BotReply(target, b.nick, fmt.Sprintf("Created poll %d: %s", p.id, p.question))

	case "vote":
		idStr, choiceStr, found := strings.Cut(rest, " ")
		if !found {
			srv.BotReply(target, b.nick, "usage: poll vote <id> <n>")
			return
		}
		id, err := parsePollID(idStr)
		if err != nil {
			srv.BotReply(target, b.nick, "bad poll id")
			return
		}
		choice, err := strconv.Atoi(strings.TrimSpace(choiceStr))
		if err != nil {
			srv.BotReply(target, b.nick, "bad option number")
			return
		}
		if err := votePoll(b, target, id, c.Nick(), choice); err != nil {
			srv.BotReply(target, b.nick, err.Error())
			return
		}
		srv.BotReply(target, b.nick, c.Nick()+" voted.")

	case "show":
		id, err := parsePollID(strings.TrimSpace(rest))
		if err != nil {
			srv.BotReply(target, b.nick, "usage: poll show <id>")
			return
		}
		summary, err := showPoll(b, target, id)
		if err != nil {
			srv.BotReply(target, b.nick, err.Error())
			return
		}
		srv.BotReply(target, b.nick, summary)

	case "close":
		id, err := parsePollID(strings.TrimSpace(rest))
		if err != nil {
			srv.BotReply(target, b.nick, "usage: poll close <id>")
			return
		}
		if err := closePoll(b, target, id); err != nil {
			srv.BotReply(target, b.nick, err.Error())
			return
		}
		srv.BotReply(target, b.nick, fmt.Sprintf("Poll %d closed.", id))

	default:
		srv.BotReply(target, b.nick, "usage: poll new|vote|show|close ...")
	}
}

func cmdCalc(b *Bot, srv *ircrelay.Server, c *ircrelay.Client, target, arg string) {
	result, err := calc(arg)
	if err != nil {
		srv.BotReply(target, b.nick, "calc: "+err.Error())
		return
	}
	srv.BotReply(target, b.nick, strconv.FormatInt(result, 10))
}

// Privileged actions (§4.5, §12): gated by the admin allowlist, and always
// injected through the normal protocol path so the channel-operator check
// still applies.

func cmdOp(b *Bot, srv *ircrelay.Server, c *ircrelay.Client, target, arg string) {
	if !isAdmin(b, c.Nick()) || arg == "" {
		return
	}
	srv.InjectCommand(c, ircrelay.CmdMode, []string{target, "+o", arg}, "")
}

func cmdDeop(b *Bot, srv *ircrelay.Server, c *ircrelay.Client, target, arg string) {
	if !isAdmin(b, c.Nick()) || arg == "" {
		return
	}
	srv.InjectCommand(c, ircrelay.CmdMode, []string{target, "-o", arg}, "")
}

func cmdKick(b *Bot, srv *ircrelay.Server, c *ircrelay.Client, target, arg string) {
	if !isAdmin(b, c.Nick()) || arg == "" {
		return
	}
	victim, reason, _ := strings.Cut(arg, " ")
	srv.InjectCommand(c, ircrelay.CmdKick, []string{target, victim}, reason)
}

func cmdTopic(b *Bot, srv *ircrelay.Server, c *ircrelay.Client, target, arg string) {
	if !isAdmin(b, c.Nick()) || arg == "" {
		return
	}
	srv.InjectCommand(c, ircrelay.CmdTopic, []string{target}, arg)
}
