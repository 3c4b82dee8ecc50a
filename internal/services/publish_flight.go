package services

import (
	"context"
	"drone-flight-planner/internal/platform/obs"
	"drone-flight-planner/internal/ports"
	"errors"
	"fmt"
	"log"
)

// PublishFlight persists the plan's deliveries and flight path and writes the
// trace file. Either collaborator may be nil to skip that output.
// It returns the path of the written trace, if any.
func PublishFlight(
	ctx context.Context,
	plan *FlightPlan,
	recorder ports.FlightRecorder,
	writer ports.TraceWriter,
) (_ string, err error) {
	defer obs.Time(ctx, "publish.flight")(&err)

	if plan == nil || plan.Flight == nil {
		return "", errors.New("publish flight: plan must be non-nil")
	}

	if recorder != nil {
		if err := recorder.SaveDeliveries(ctx, plan.Deliveries); err != nil {
			return "", fmt.Errorf("publish flight: save deliveries: %w", err)
		}
		if err := recorder.SaveFlightPath(ctx, plan.Events); err != nil {
			return "", fmt.Errorf("publish flight: save flight path: %w", err)
		}
	}

	path := ""
	if writer != nil {
		path, err = writer.WriteTrace(ctx, plan.Date, plan.Flight.Trace())
		if err != nil {
			return "", fmt.Errorf("publish flight: write trace: %w", err)
		}
	}

	log.Printf(
		"flight published date=%s state=%s moves=%d deliveries=%d/%d trace=%q",
		plan.Date, plan.Flight.State, plan.Flight.Moves(), len(plan.Deliveries), len(plan.Orders), path,
	)
	return path, nil
}
