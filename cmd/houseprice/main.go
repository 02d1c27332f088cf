// houseprice trains a linear regression model on house sale records and
// predicts sale prices from square footage, bedroom and bathroom counts.
//
// Training (the default mode) reads the CSV and schema named in the config
// file, fits the preprocessing pipeline and the model, reports hold-out
// metrics and writes a model bundle:
//
//	houseprice -config config.yaml
//
// Prediction loads a previously trained bundle and prices a single house
// given as comma separated column=value pairs:
//
//	houseprice -config config.yaml -predict "GrLivArea=1800,BedroomAbvGr=3,FullBath=2"
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/RAHAMNIabdelkaderseifelislem/PRODIGY-ML-01/bundle"
	"github.com/RAHAMNIabdelkaderseifelislem/PRODIGY-ML-01/dataset"
	"github.com/RAHAMNIabdelkaderseifelislem/PRODIGY-ML-01/linear"
	"github.com/RAHAMNIabdelkaderseifelislem/PRODIGY-ML-01/metrics"
	"github.com/RAHAMNIabdelkaderseifelislem/PRODIGY-ML-01/pkg/log"
	"github.com/RAHAMNIabdelkaderseifelislem/PRODIGY-ML-01/preprocessing"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the config file")
	predict := flag.String("predict", "", `price one house, e.g. "GrLivArea=1800,BedroomAbvGr=3,FullBath=2"`)
	loglevel := flag.String("loglevel", "info", "log level (debug, info, warn, error)")
	flag.Parse()

	log.SetupLogger(*loglevel)

	if err := run(*configPath, *predict); err != nil {
		slog.Error("houseprice failed", log.ErrAttr(err))
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath, predict string) error {
	cfg, err := dataset.LoadConfig(configPath)
	if err != nil {
		return err
	}

	if predict != "" {
		return runPredict(cfg, predict)
	}
	return runTrain(cfg)
}

func runTrain(cfg *dataset.Config) error {
	start := time.Now()

	tbl, err := dataset.ReadFile(cfg.Data, cfg.Schema, cfg.Target)
	if err != nil {
		return err
	}

	slog.Info("loaded training data",
		slog.String(log.OperationKey, "fit"),
		slog.Int(log.SamplesKey, tbl.NumRows()),
		slog.Int(log.FeaturesKey, len(cfg.Schema)))

	p, err := preprocessing.NewPreprocessorWithSplit(cfg.Schema, cfg.Seed, cfg.TestSize)
	if err != nil {
		return err
	}
	if err := p.Fit(tbl); err != nil {
		return err
	}

	XTrain, XTest, yTrain, yTest, err := p.PrepareData(tbl, cfg.Target)
	if err != nil {
		return err
	}

	lr := linear.NewLinearRegression()
	if err := lr.Fit(XTrain, yTrain); err != nil {
		return err
	}

	report, err := lr.Evaluate(XTest, yTest)
	if err != nil {
		return err
	}

	slog.Info("model evaluated",
		slog.String(log.ModelNameKey, "LinearRegression"),
		slog.String(log.OperationKey, "evaluate"),
		slog.Float64(log.MSEKey, report.MSE),
		slog.Float64(log.RMSEKey, report.RMSE),
		slog.Float64(log.R2Key, report.R2),
		slog.Int64(log.DurationMsKey, time.Since(start).Milliseconds()))

	fmt.Println("Model Performance:")
	fmt.Printf("Mean Squared Error: %.2f\n", report.MSE)
	fmt.Printf("Root Mean Squared Error: %.2f\n", report.RMSE)
	fmt.Printf("R-squared Score: %.4f\n", report.R2)

	b, err := bundle.New(lr, p, bundle.Metadata{
		TrainedAt: time.Now().UTC(),
		Features:  cfg.Schema.Names(),
		Report:    report,
	})
	if err != nil {
		return err
	}
	if err := b.Save(cfg.Model); err != nil {
		return err
	}
	fmt.Printf("Model saved to %s\n", cfg.Model)

	if cfg.Plot != "" {
		pred, err := lr.Predict(XTest)
		if err != nil {
			return err
		}
		if err := metrics.SavePredictionPlot(yTest, predictionVec(pred), cfg.Plot); err != nil {
			return err
		}
		fmt.Printf("Evaluation plot saved to %s\n", cfg.Plot)
	}

	return nil
}

func runPredict(cfg *dataset.Config, spec string) error {
	b, err := bundle.Load(cfg.Model)
	if err != nil {
		return err
	}

	lr, p, err := b.Restore()
	if err != nil {
		return err
	}

	values, err := parsePredictSpec(spec)
	if err != nil {
		return err
	}

	row, err := dataset.BuildRow(p.Schema, values)
	if err != nil {
		return err
	}

	X, err := p.Transform(row)
	if err != nil {
		return err
	}

	pred, err := lr.Predict(X)
	if err != nil {
		return err
	}

	price := pred.At(0, 0)
	slog.Info("predicted price",
		slog.String(log.ModelNameKey, "LinearRegression"),
		slog.String(log.OperationKey, "predict"),
		slog.Float64("prediction", price))

	fmt.Printf("Predicted price: $%s\n", formatPrice(price))
	return nil
}

// predictionVec copies the single prediction column into a vector.
func predictionVec(pred mat.Matrix) *mat.VecDense {
	r, _ := pred.Dims()
	v := mat.NewVecDense(r, nil)
	for i := 0; i < r; i++ {
		v.SetVec(i, pred.At(i, 0))
	}
	return v
}

// parsePredictSpec parses "col=val,col=val" into a column to value map.
func parsePredictSpec(spec string) (map[string]string, error) {
	values := make(map[string]string)
	for _, pair := range strings.Split(spec, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		name, value, found := strings.Cut(pair, "=")
		if !found {
			return nil, fmt.Errorf("invalid -predict entry %q, expected column=value", pair)
		}
		values[strings.TrimSpace(name)] = strings.TrimSpace(value)
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("-predict needs at least one column=value pair")
	}
	return values, nil
}

// formatPrice renders a price with comma separated thousands, e.g. 1234567.89
// becomes "1,234,567.89".
func formatPrice(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)

	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	intPart, fracPart, _ := strings.Cut(s, ".")
	var out strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			out.WriteByte(',')
		}
		out.WriteRune(r)
	}

	result := out.String() + "." + fracPart
	if neg {
		result = "-" + result
	}
	return result
}
