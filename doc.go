// Package houseprice provides a house price prediction pipeline built on
// linear regression, from raw CSV records to a persisted, reloadable model.
//
// The pipeline mirrors the usual tabular workflow: declare a column schema,
// load a CSV, impute and scale numeric features, encode categorical ones,
// split into train and hold-out sets, fit an ordinary least squares model
// and evaluate it with MSE, RMSE and R².
//
// # Quick Start
//
//	package main
//
//	import (
//	    "fmt"
//	    "log"
//
//	    "github.com/RAHAMNIabdelkaderseifelislem/PRODIGY-ML-01/dataset"
//	    "github.com/RAHAMNIabdelkaderseifelislem/PRODIGY-ML-01/linear"
//	    "github.com/RAHAMNIabdelkaderseifelislem/PRODIGY-ML-01/preprocessing"
//	)
//
//	func main() {
//	    schema := dataset.Schema{
//	        {Name: "GrLivArea", Kind: dataset.KindNumeric},
//	        {Name: "BedroomAbvGr", Kind: dataset.KindNumeric},
//	        {Name: "FullBath", Kind: dataset.KindNumeric},
//	    }
//
//	    tbl, err := dataset.ReadFile("train.csv", schema, "SalePrice")
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    p, _ := preprocessing.NewPreprocessor(schema)
//	    if err := p.Fit(tbl); err != nil {
//	        log.Fatal(err)
//	    }
//	    XTrain, XTest, yTrain, yTest, err := p.PrepareData(tbl, "SalePrice")
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    model := linear.NewLinearRegression()
//	    if err := model.Fit(XTrain, yTrain); err != nil {
//	        log.Fatal(err)
//	    }
//
//	    report, err := model.Evaluate(XTest, yTest)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Printf("RMSE: %.2f, R²: %.4f\n", report.RMSE, report.R2)
//	}
//
// # Packages
//
// - dataset: column schema, YAML config and CSV loading
// - preprocessing: imputation, label encoding, standard scaling, train/test split
// - linear: ordinary least squares regression via QR with an SVD fallback
// - metrics: MSE, RMSE, MAE, R² and evaluation plots
// - bundle: persistence of the model together with its preprocessing state
//
// The houseprice command under cmd/houseprice ties these together into a
// train-then-predict CLI driven by a YAML config file.
package houseprice
