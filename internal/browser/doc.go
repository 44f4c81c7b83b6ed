// Package browser opens URLs in the user's default web browser.
package browser
