// Package testutil holds helpers shared by package tests.
package testutil
