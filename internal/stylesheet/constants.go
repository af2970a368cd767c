/*************************************************************************
 * Copyright 2024 Gravwell, Inc. All rights reserved.
 * Contact: <legal@gravwell.io>
 *
 * This software may be modified and distributed under the terms of the
 * BSD 2-clause license. See the LICENSE file for details.
 **************************************************************************/

package stylesheet

// Other constants enforcing a consistent style across all panes.

const (
	SqlModalWidth   = 80
	Indent          = "  "
	UpSigil         = "↑"
	DownSigil       = "↓"
	UpDownSigils    = UpSigil + "/" + DownSigil
	LeftSigil       = "←"
	RightSigil      = "→"
	LeftRightSigils = LeftSigil + "/" + RightSigil
)
