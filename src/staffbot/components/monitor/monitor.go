// Package monitor relays lifecycle events from the Redis stream into the
// staff Discord channel so admins see new claims and decisions without
// watching the dashboard.
package monitor

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/redis/go-redis/v9"

	"github.com/kltransit/lostfound/src/shared/data"
)

type Config struct {
	Redis     *redis.Client
	Session   *discordgo.Session
	ChannelID string
}

type StreamMonitor struct {
	config Config
	lastID string
}

func NewStreamMonitor(config Config) *StreamMonitor {
	return &StreamMonitor{config: config, lastID: "$"}
}

func (m *StreamMonitor) Start(ctx context.Context) {
	log.Println("Starting staff event monitor")
	for {
		select {
		case <-ctx.Done():
			log.Println("Stopping staff event monitor")
			return
		default:
		}

		streams, err := m.config.Redis.XRead(ctx, &redis.XReadArgs{
			Streams: []string{data.StreamEvents, m.lastID},
			Block:   5 * time.Second,
			Count:   10,
		}).Result()
		if err != nil {
			if err != redis.Nil && ctx.Err() == nil {
				log.Printf("read event stream: %v", err)
				time.Sleep(5 * time.Second)
			}
			continue
		}

		for _, stream := range streams {
			for _, msg := range stream.Messages {
				m.lastID = msg.ID
				if err := m.post(msg.Values); err != nil {
					log.Printf("post event %s: %v", msg.ID, err)
				}
			}
		}
	}
}

func (m *StreamMonitor) post(values map[string]interface{}) error {
	text := format(values)
	if text == "" {
		return nil
	}
	_, err := m.config.Session.ChannelMessageSend(m.config.ChannelID, text)
	return err
}

func format(values map[string]interface{}) string {
	event, _ := values["event"].(string)
	switch event {
	case "claim.submitted":
		return fmt.Sprintf("New claim %v on item %q — triage needed.",
			values["claimId"], values["title"])
	case "claim.approved":
		return fmt.Sprintf("Claim %v approved by %v; item %v resolved.",
			values["claimId"], values["adminId"], values["itemId"])
	case "claim.rejected":
		return fmt.Sprintf("Claim %v rejected by %v: %v",
			values["claimId"], values["adminId"], values["reason"])
	}
	return ""
}
