// Sideline - Live Sports Commentary Streaming
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sideline

package stream

import (
	"time"
)

// StreamSpec describes one JetStream stream.
type StreamSpec struct {
	Name            string
	Subjects        []string
	MaxAge          time.Duration
	MaxBytes        int64
	MaxMsgs         int64
	DuplicateWindow time.Duration
	Replicas        int
}

// ServerConfig configures the embedded NATS server.
type ServerConfig struct {
	Host              string
	Port              int
	StoreDir          string
	JetStreamMaxMem   int64
	JetStreamMaxStore int64
}

// DefaultServerConfig returns embedded server defaults.
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Host:              "127.0.0.1",
		Port:              4222,
		StoreDir:          "/data/nats/jetstream",
		JetStreamMaxMem:   256 << 20,
		JetStreamMaxStore: 1 << 30,
	}
}

// ConnConfig holds NATS connection settings shared by publishers,
// subscribers and sources.
type ConnConfig struct {
	URL             string
	MaxReconnects   int
	ReconnectWait   time.Duration
	ReconnectBuffer int
}

// DefaultConnConfig returns connection defaults for url.
func DefaultConnConfig(url string) ConnConfig {
	return ConnConfig{
		URL:             url,
		MaxReconnects:   -1,
		ReconnectWait:   2 * time.Second,
		ReconnectBuffer: 8 << 20,
	}
}

// PublisherConfig configures a Publisher.
type PublisherConfig struct {
	ConnConfig
	EnableTrackMsgID bool
}

// DefaultPublisherConfig returns publisher defaults for url.
func DefaultPublisherConfig(url string) PublisherConfig {
	return PublisherConfig{
		ConnConfig:       DefaultConnConfig(url),
		EnableTrackMsgID: true,
	}
}

// SubscriberConfig configures a durable stream subscriber.
type SubscriberConfig struct {
	ConnConfig
	StreamName       string
	DurableName      string
	QueueGroup       string
	SubscribersCount int
	AckWaitTimeout   time.Duration
	CloseTimeout     time.Duration
	MaxDeliver       int
	MaxAckPending    int
}

// DefaultSubscriberConfig returns subscriber defaults bound to streamName.
func DefaultSubscriberConfig(url, streamName string) SubscriberConfig {
	return SubscriberConfig{
		ConnConfig:       DefaultConnConfig(url),
		StreamName:       streamName,
		DurableName:      "sideline-enrichment",
		QueueGroup:       "sideline-enrichment",
		SubscribersCount: 1,
		AckWaitTimeout:   30 * time.Second,
		CloseTimeout:     30 * time.Second,
		MaxDeliver:       5,
		MaxAckPending:    256,
	}
}

// BreakerConfig configures a circuit breaker.
type BreakerConfig struct {
	Name             string
	MaxRequests      uint32
	Interval         time.Duration
	Timeout          time.Duration
	FailureThreshold uint32
}

// DefaultBreakerConfig returns breaker defaults for name.
func DefaultBreakerConfig(name string) BreakerConfig {
	return BreakerConfig{
		Name:             name,
		MaxRequests:      3,
		Interval:         time.Minute,
		Timeout:          30 * time.Second,
		FailureThreshold: 5,
	}
}
