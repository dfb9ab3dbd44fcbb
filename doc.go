/*
Package sgd implements implicit stochastic gradient descent for fitting
generalized linear models online, one observation at a time.

Each update solves a small scalar implicit equation: the new parameter value
appears on both sides of the update rule, so a root solve replaces the direct
assignment of explicit SGD.  The implicit form is much more stable with
respect to the learning rate, at the cost of one bounded Halley/Newton solve
per data point.

An Experiment is configured once with a transfer (inverse link) function and a
learning rate policy, then driven with one data point at a time.  The sequence
of parameter estimates is collected in an OnlineOutput, one column per update.

Data can be supplied as an in-memory Dataset or streamed through the dstream
package, see http://github.com/kshedden/dstream
*/

package sgd
