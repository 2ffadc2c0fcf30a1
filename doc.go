// Package entitysync is a message-driven synchronisation worker built on
// Watermill. It consumes envelope messages that instruct it to create or
// update business entities (customers, orders, products, suppliers, and
// telephone numbers), validates the payloads, and persists them through
// pluggable gateways. The target transport (RabbitMQ, AWS SNS/SQS, or Go
// channels) is read from Config; the Service bootstraps the Watermill
// router and registers the default middleware chain for correlation IDs,
// logging, tracing, Prometheus metrics, and panic recovery.
//
// Each entity type gets its own queue and its own consume loop. A loop
// reads one message at a time, decodes the envelope, routes it through the
// handler registry, and acknowledges according to the failure taxonomy:
// malformed envelopes, validation failures, and missing entities are
// dead-lettered; entity types without a registered handler are dropped;
// everything else is negatively acknowledged so the broker redelivers it.
// There is no in-process retry or backoff, redelivery is entirely the
// broker's responsibility.
//
// # Transports
//
// Entitysync supports 3 message transports out of the box:
//   - channel: In-memory Go channels for testing and local development
//   - rabbitmq: AMQP-based durable queues with a prefetch of one
//   - aws: AWS SNS/SQS with LocalStack support
//
// # Setup
//
// A minimal setup fills Config, builds a handler Registry with the per
// entity handlers and their stores, creates a Service, registers one
// entity consumer per type, and calls Start. See cmd/entitysync-worker for
// a complete wiring against PostgreSQL.
package entitysync
