// Package calc implements the calculation pipeline.
//
// A calculation is one call to Calculator.Calculate with an operation name
// and a list of raw inputs. The pipeline runs four steps in order:
//
//  1. Parse each raw value and check it against its [Min, Max] range.
//  2. Invoke the operation from the registry with the parsed values.
//  3. Turn a domain failure (or a NaN result) into a failure result.
//  4. Format the value through the Presenter according to the operation's
//     hint.
//
// Every call returns a Result; errors never escape as panics or Go errors.
// Range checks always run before the operation is invoked.
//
// The Calculator keeps no state between calls beyond the read-only registry
// and presenter, so one Calculator can serve any number of callers.
package calc
