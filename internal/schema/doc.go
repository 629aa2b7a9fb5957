// Package schema infers the maintenance schema of the fleet ledger from
// raw column names and computes remaining-life signals per component.
//
// The ledger stores each vehicle as one wide record whose column names
// encode the maintenance plan: "aceite_motor_km", "aceite_motor_fecha",
// "aceite_motor_modelo" and so on. This package turns that flat column
// list into a structured view and keeps the rules for doing so explicit
// and testable:
//
//   - Classifier: decides, per column name, whether the column carries
//     maintenance data and for which component and field kind. Rules are
//     an ordered list evaluated first-match-wins: exclusion, alias,
//     positional suffix, bare suffix, tire literal.
//   - Registries: exclusion set, alias map and category configuration.
//     Each is plain data with a hardcoded default used when no stored
//     override exists. Loading/saving them is the caller's concern; the
//     types here never touch a store.
//   - Assembler: folds classified columns into Components, generates
//     display labels, and partitions the result into the category tree.
//   - Health: normalized remaining-life percentage per component from
//     odometer and hour-meter counters, plus tri-state status under a
//     named threshold preset.
//
// Everything in this package is a pure function of its inputs, so
// concurrent callers need no coordination.
package schema
