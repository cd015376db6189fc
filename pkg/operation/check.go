// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package operation

import (
	"context"
	"fmt"

	"github.com/walteh/replacecontent/pkg/status"
)

// ✅ Check validates every unit without writing anything. It fails with
// ErrInvalidContent when any unit is invalid.
func (o *Operator) Check(ctx context.Context) (*Result, error) {
	res, err := o.run(ctx)
	if err != nil {
		return nil, err
	}

	for _, u := range res.Units {
		o.logUnit(ctx, u, unitInfo(u).Status)
	}
	o.printInvalid(res)

	ul := status.NewUserLogger(ctx)
	if res.HasInvalid() {
		ul.LogValidation(false, fmt.Sprintf("%d of %d units have invalid markers", len(res.Invalid), len(res.Units)), nil)
	} else {
		ul.LogValidation(true, fmt.Sprintf("%d units valid, %d would change", len(res.Units), len(res.Modified)), nil)
	}
	ul.LogSummary(o.status.Summary())

	return res, invalidError(res)
}
