// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command calendar converts dates between calendars and does calendar
// arithmetic from the command line.
//
// Custom calendars are read from a configuration file:
//
//	default_calendar: retail
//	calendars:
//	  retail:
//	    calendar: week
//	    day_of_week: saturday
//	    begins_or_ends: ends
//	    first_or_last: nearest
//	    weeks_in_month: [4, 5, 4]
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
