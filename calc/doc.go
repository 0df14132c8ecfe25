// Package calc implements a floating-point calculator on the operator-precedence
// parser in package opparser.
//
// Statements are written the way you'd type them into a desk calculator.
// "2 pi r" is a multiplication of three terms, and implicit multiplication
// binds tighter than explicit, so "1/2pi" is "1/(2*pi)". "-2^2^3" is the same
// as "-(2^(2^3))". Functions apply to the following term: "sin 2^2" is
// "(sin 2)^2", and "sin(2)^2" is the same. A postfix ! is the factorial,
// extended to all reals with the Gamma function.
//
// "expr -> name" assigns the value of expr to the constant name. Assignments
// made by a statement take effect when the statement finishes successfully.
// The result of each statement is also stored as ans.
package calc
