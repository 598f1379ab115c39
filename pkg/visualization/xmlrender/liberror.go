// Copyright 2025 The Sigstore Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package xmlrender

// #cgo pkg-config: libxml-2.0
// #include <libxml/xmlerror.h>
import "C"

// resetLastError clears libxml2's per-thread last error. libxslt reads the
// same slot when it compiles a stylesheet, so a stale validation error must
// not survive on the calling thread.
func resetLastError() {
	C.xmlResetLastError()
}
