// Package main contains a command that plans a path for a planar robot and
// dumps the resulting roadmap.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/edaniels/golog"
	"github.com/golang/geo/r3"
	"go.viam.com/utils"

	"github.com/Hankfirst/hpp-core/collision"
	"github.com/Hankfirst/hpp-core/configspace"
	"github.com/Hankfirst/hpp-core/planner"
	"github.com/Hankfirst/hpp-core/roadmap"
	"github.com/Hankfirst/hpp-core/steering"
)

var logger = golog.NewDevelopmentLogger("planview")

func main() {
	utils.ContextualMain(mainWithArgs, logger)
}

// Arguments for the command.
type Arguments struct {
	Blocked bool  `flag:"blocked,usage=occlude the straight segment with a box"`
	Seed    int64 `flag:"seed,default=1,usage=random seed for the roadmap builder"`
}

func mainWithArgs(ctx context.Context, args []string, logger golog.Logger) error {
	var argsParsed Arguments
	if err := utils.ParseFlags(args, &argsParsed); err != nil {
		return err
	}
	return plan(argsParsed.Blocked, argsParsed.Seed, logger)
}

func plan(blocked bool, seed int64, logger golog.Logger) error {
	device := configspace.NewDevice("planar", 2, 0, "base")
	device.SetSteeringMethod(steering.NewLinear(nil))

	p := planner.New(logger)
	prob := p.AddProblem(device)
	prob.SetInitConfig(configspace.NewConfiguration(0, 0))
	prob.SetGoalConfig(configspace.NewConfiguration(1, 0))

	if blocked {
		p.SetObstacleList([]collision.Object{
			collision.NewBox("wall",
				r3.Vector{X: 0.4, Y: -0.2, Z: -1},
				r3.Vector{X: 0.6, Y: 0.2, Z: 1}),
		})
	}

	rm := roadmap.New(configspace.NewL2Distance(), logger)
	builder := planner.NewDiffusingBuilder(
		rm,
		device.SteeringMethod(),
		prob.Validator(),
		[]float64{-1, -1},
		[]float64{2, 1},
		seed,
		logger,
	)
	if err := p.SetRoadmapBuilderAt(0, builder); err != nil {
		return err
	}

	if err := p.SolveProblem(0); err != nil {
		return err
	}
	path := p.PathAt(0, prob.NumPaths()-1)
	logger.Infof("solved: %s -> %s in %d segments", path.Start(), path.End(), path.CountDirectPaths())
	fmt.Fprint(os.Stdout, rm.String())
	return nil
}
