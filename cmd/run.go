package cmd

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/sztaki-hu/dvrpsim"
	"github.com/sztaki-hu/dvrpsim/engine"
	"github.com/sztaki-hu/dvrpsim/providers"
	"github.com/sztaki-hu/dvrpsim/stats"
)

var (
	logLevel               string
	horizon                float64
	routingStep            float64
	decisionPointOnRequest bool
	useGreedy              bool
)

// runCmd executes a scenario file end to end: it loads the YAML
// scenario, wires the order-release and periodic-routing providers,
// runs the simulation to the given horizon, and prints a statistics
// table.
var runCmd = &cobra.Command{
	Use:   "run <scenario.yaml>",
	Short: "Run a dvrpsim scenario",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := godotenv.Load(); err != nil {
			logrus.Debug("no .env file found, using environment variables as-is")
		}

		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		scenario, err := LoadScenario(args[0])
		if err != nil {
			logrus.Fatalf("%v", err)
		}

		m, orders, err := scenario.Build()
		if err != nil {
			logrus.Fatalf("%v", err)
		}

		var cb dvrpsim.ModelCallbacks
		if useGreedy {
			cb.RoutingCallback = GreedyRoutingCallback
		}
		m.SetCallbacks(cb)

		providers.OrderProvider(m, orders, decisionPointOnRequest)
		providers.PeriodicUpdater(m, engine.Time(routingStep), true)

		if err := m.Run(engine.Time(horizon)); err != nil {
			logrus.Fatalf("simulation aborted: %v", err)
		}

		fmt.Print(stats.Collect(m).Print())
	},
}

func init() {
	runCmd.Flags().StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")
	runCmd.Flags().Float64Var(&horizon, "horizon", 1e9, "Simulation horizon")
	runCmd.Flags().Float64Var(&routingStep, "routing-step", 10, "Interval between periodic routing decision points")
	runCmd.Flags().BoolVar(&decisionPointOnRequest, "decision-on-request", false, "Open a routing decision point whenever an order is requested")
	runCmd.Flags().BoolVar(&useGreedy, "greedy", false, "Use the sample greedy routing callback instead of rejecting every order")
}
