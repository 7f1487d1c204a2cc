package utils

//AllowedImageExtensions are the upload formats the color pipeline accepts
var AllowedImageExtensions = []string{".png", ".jpg", ".jpeg", ".bmp", ".tiff"}

//MinClusters is the smallest cluster count the analyze surface accepts
const MinClusters = 3

//MaxClusters is the largest cluster count the analyze surface accepts
const MaxClusters = 10

//MinFactor is the smallest downsample factor the analyze surface accepts
const MinFactor = 0.1

//MaxFactor is the largest downsample factor the analyze surface accepts
const MaxFactor = 1.0
