package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/bwmarrin/discordgo"

	"github.com/kltransit/lostfound/src/shared/data"
	"github.com/kltransit/lostfound/src/staffbot/components/monitor"
	"github.com/kltransit/lostfound/src/staffbot/config"
)

func main() {
	cfg := config.Load()

	rdb := data.MustRedis(cfg.RedisURL)

	session, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		log.Fatalf("discord: %v", err)
	}
	session.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMessages
	if err := session.Open(); err != nil {
		log.Fatalf("discord open: %v", err)
	}
	defer session.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mon := monitor.NewStreamMonitor(monitor.Config{
		Redis:     rdb,
		Session:   session,
		ChannelID: cfg.StaffChannelID,
	})
	go mon.Start(ctx)

	log.Println("Staff bot running")
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
}
