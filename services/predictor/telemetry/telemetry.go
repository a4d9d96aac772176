// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package telemetry wires OpenTelemetry trace export for the predictor
// service. Metrics are exported separately through the Prometheus
// registry, so only the tracer side lives here.
package telemetry

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
)

// ErrNilContext indicates Init was called without a context.
var ErrNilContext = errors.New("telemetry: nil context")

// Config controls trace export.
type Config struct {
	// ServiceName identifies this service in exported spans.
	ServiceName string

	// ServiceVersion is the version string for this service.
	ServiceVersion string

	// Endpoint is the OTLP gRPC receiver, host:port.
	Endpoint string

	// Insecure disables TLS for the OTLP connection.
	Insecure bool
}

// Init sets the global TracerProvider to export over OTLP gRPC.
//
// Description:
//
//	After Init returns successfully, otel.Tracer() and middleware such
//	as otelgin pick up the configured provider. The returned shutdown
//	function flushes buffered spans and must be called on exit.
//
// Inputs:
//
//	ctx - Context for the exporter connection.
//	cfg - Exporter configuration.
//
// Outputs:
//
//	shutdown - Cleanup function to call on application exit.
//	error - Non-nil if the exporter cannot be created.
//
// Thread Safety: Call once at application startup.
func Init(ctx context.Context, cfg Config) (shutdown func(context.Context) error, err error) {
	if ctx == nil {
		return nil, ErrNilContext
	}

	opts := []otlptracegrpc.Option{
		otlptracegrpc.WithEndpoint(cfg.Endpoint),
	}
	if cfg.Insecure {
		opts = append(opts, otlptracegrpc.WithInsecure())
	}
	exporter, err := otlptracegrpc.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create otlp exporter: %w", err)
	}

	res := resource.NewWithAttributes(
		"",
		attribute.String("service.name", cfg.ServiceName),
		attribute.String("service.version", cfg.ServiceVersion),
	)

	tp := trace.NewTracerProvider(
		trace.WithBatcher(exporter),
		trace.WithResource(res),
		trace.WithSampler(trace.AlwaysSample()),
	)
	otel.SetTracerProvider(tp)

	return tp.Shutdown, nil
}
