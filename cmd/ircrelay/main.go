/*
   Copyright (c) 2023, btnmasher
   All rights reserved.
   Use of this source code is governed by a BSD-style
   license that can be found in the LICENSE file.
*/

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sourcegraph/conc"

	irc "github.com/btnmasher/ircrelay"
	"github.com/btnmasher/ircrelay/bot"

	formatter "github.com/antonfisher/nested-logrus-formatter"
	"github.com/sirupsen/logrus"
)

func main() {
	if len(os.Args) != 3 {
		fmt.Fprintf(os.Stderr, "usage: %s <port> <password>\n", os.Args[0])
		os.Exit(1)
	}

	port := os.Args[1]
	password := os.Args[2]

	mainContext, shutdown := context.WithCancel(context.Background())
	defer shutdown()

	wg := conc.NewWaitGroup()
	defer wg.Wait()

	shutdownTimeout := 30 * time.Second
	logger := logrus.New()
	logger.SetFormatter(&formatter.Formatter{
		HideKeys:    true,
		TimestampFormat: time.RFC3339,
	})

	relayBot := bot.New("ircrelay", bot.WithAdmins("admin", "operator"))

	server := irc.NewServer(
		irc.WithHostname("irc.localhost.net"),
		irc.WithNetwork("ircrelay"),
		irc.WithPassword(password),
		irc.WithListenAddr(":"+port),
		irc.WithLogger(logger),
		irc.WithLogLevel(logrus.InfoLevel),
		irc.WithBot(relayBot),
		irc.WithGracefulShutdown(mainContext, shutdownTimeout),
	)

	wg.Go(func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, irc.ErrServerClosed) {
			logger.Fatal(fmt.Errorf("failed to start server: %w", err))
		}
	})

	log := logger.WithField("component", "main")
	killSignals := make(chan os.Signal, 1)
	signal.Notify(killSignals, syscall.SIGINT, syscall.SIGTERM)

	sig := <-killSignals
	log.Infof("initializing server shutdown, received signal: %s", sig)
	shutdown()
}
