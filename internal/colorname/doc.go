// Package colorname maps RGB pixels to color name categories.
//
// A color name table assigns one of eleven categories (black, blue, brown,
// grey, green, orange, pink, purple, red, white, yellow) to each of the
// 32768 buckets obtained by quantizing every channel of a pixel to 32
// levels. Tables are read from a whitespace-separated text file of 14
// values per bucket: a reference color followed by one weight per category.
//
// Classify turns an *RGB image into per-pixel category ids; Render turns it
// into the representative color of each pixel's category.
package colorname
