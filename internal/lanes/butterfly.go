package lanes

func butterfly1[F Float](loRe, loIm, hiRe, hiIm, wRe, wIm []F) {
	tRe := hiRe[0]*wRe[0] - hiIm[0]*wIm[0]
	tIm := hiIm[0]*wRe[0] + hiRe[0]*wIm[0]
	hiRe[0] = loRe[0] - tRe
	hiIm[0] = loIm[0] - tIm
	loRe[0] += tRe
	loIm[0] += tIm
}

func butterfly2[F Float](loRe, loIm, hiRe, hiIm, wRe, wIm []F) {
	lr, li := (*[2]F)(loRe), (*[2]F)(loIm)
	hr, hi := (*[2]F)(hiRe), (*[2]F)(hiIm)
	wr, wi := (*[2]F)(wRe), (*[2]F)(wIm)

	for k := range 2 {
		tRe := hr[k]*wr[k] - hi[k]*wi[k]
		tIm := hi[k]*wr[k] + hr[k]*wi[k]
		hr[k] = lr[k] - tRe
		hi[k] = li[k] - tIm
		lr[k] += tRe
		li[k] += tIm
	}
}

func butterfly4[F Float](loRe, loIm, hiRe, hiIm, wRe, wIm []F) {
	lr, li := (*[4]F)(loRe), (*[4]F)(loIm)
	hr, hi := (*[4]F)(hiRe), (*[4]F)(hiIm)
	wr, wi := (*[4]F)(wRe), (*[4]F)(wIm)

	for k := range 4 {
		tRe := hr[k]*wr[k] - hi[k]*wi[k]
		tIm := hi[k]*wr[k] + hr[k]*wi[k]
		hr[k] = lr[k] - tRe
		hi[k] = li[k] - tIm
		lr[k] += tRe
		li[k] += tIm
	}
}

func butterfly8[F Float](loRe, loIm, hiRe, hiIm, wRe, wIm []F) {
	lr, li := (*[8]F)(loRe), (*[8]F)(loIm)
	hr, hi := (*[8]F)(hiRe), (*[8]F)(hiIm)
	wr, wi := (*[8]F)(wRe), (*[8]F)(wIm)

	for k := range 8 {
		tRe := hr[k]*wr[k] - hi[k]*wi[k]
		tIm := hi[k]*wr[k] + hr[k]*wi[k]
		hr[k] = lr[k] - tRe
		hi[k] = li[k] - tIm
		lr[k] += tRe
		li[k] += tIm
	}
}
