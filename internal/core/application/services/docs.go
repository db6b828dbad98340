// Package services implements the AGU application services.
//
// Every operation validates its input in a fixed order, checks existence and
// uniqueness through the repositories, and mutates state inside one
// transaction opened with tx.Run. Expected failures come back as the Left of
// an either.Either holding the operation's own error kind; only
// infrastructure failures are returned as Go errors, after the transaction
// was rolled back.
package services
