// Package samboost provides multiclass AdaBoost (SAMME) over decision stumps
// for Go, with a scikit-learn-like estimator surface.
//
// # Features
//
// - Exact stump training: O(k*n log n) weighted split search per boosting round
// - Round-by-round control: drive the Booster directly or use the classifier
// - scikit-learn-like API: familiar Fit/Predict/Score over gonum matrices
// - Robust error handling: structured errors with stack traces
// - Structured logging: zerolog-backed training and prediction logs
//
// # Quick Start
//
//	package main
//
//	import (
//	    "fmt"
//	    "log"
//
//	    "github.com/HernanLe100/samboost/ensemble"
//	    "gonum.org/v1/gonum/mat"
//	)
//
//	func main() {
//	    X := mat.NewDense(4, 1, []float64{0, 1, 2, 3})
//	    y := mat.NewDense(4, 1, []float64{0, 0, 1, 1})
//
//	    clf := ensemble.NewAdaBoostClassifier(ensemble.WithNEstimators(10))
//	    if err := clf.Fit(X, y); err != nil {
//	        log.Fatal(err)
//	    }
//
//	    preds, err := clf.Predict(mat.NewDense(1, 1, []float64{0.5}))
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Println(preds.At(0, 0)) // 0
//	}
//
// For stepwise training and access to the per-sample weight vector, construct
// an ensemble.Booster and call Iterate once per boosting round.
package samboost
