// Package analysis turns recorded scroll runs into plottable point sets.
//
// Phase portraits plot scroll position against velocity: a free fall traces
// a curve toward terminal velocity, each bounce jumps to a negative velocity
// at the bottom, and a climb shows up as a long excursion below the axis.
package analysis
