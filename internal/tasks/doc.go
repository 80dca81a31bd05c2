// SPDX-License-Identifier: MPL-2.0

// Package tasks holds the development tasks that are a thin pass-through to
// external tools: CI checks, documentation watch mode and coverage reports.
package tasks
