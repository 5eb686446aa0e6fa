// Package mail delivers the messages the user service sends out of band.
// Today that is only the password reset link.
package mail
